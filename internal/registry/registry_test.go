package registry

import (
	"testing"

	"github.com/vovakirdan/tui-stack/internal/core"
)

type fakeGame struct {
	id       string
	attached *Host
}

func (g *fakeGame) ID() string                           { return g.id }
func (g *fakeGame) Title() string                        { return "Fake " + g.id }
func (g *fakeGame) Reset(core.RuntimeConfig)             {}
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *fakeGame) Render(*core.Screen)                  {}
func (g *fakeGame) State() core.GameState                { return core.GameState{} }
func (g *fakeGame) Attach(h Host)                        { g.attached = &h }

func TestRegisterCreateList(t *testing.T) {
	Register("test_fake_a", func() Game { return &fakeGame{id: "test_fake_a"} })
	Register("test_fake_b", func() Game { return &fakeGame{id: "test_fake_b"} })

	if !Exists("test_fake_a") {
		t.Fatal("registered game should exist")
	}
	if Exists("test_missing") {
		t.Error("unregistered game should not exist")
	}

	g, err := Create("test_fake_b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "test_fake_b" {
		t.Errorf("Create() returned %q", g.ID())
	}

	if _, err := Create("test_missing"); err == nil {
		t.Error("Create() of an unknown game should fail")
	}

	var a, b int = -1, -1
	list := List()
	for i, info := range list {
		switch info.ID {
		case "test_fake_a":
			a = i
			if info.Title != "Fake test_fake_a" {
				t.Errorf("title = %q", info.Title)
			}
		case "test_fake_b":
			b = i
		}
	}
	if a < 0 || b < 0 || a > b {
		t.Errorf("List() should contain both games sorted by ID, got %v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_fake_dup", func() Game { return &fakeGame{id: "test_fake_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test_fake_dup", func() Game { return &fakeGame{id: "test_fake_dup"} })
}

func TestCreateHostedAttaches(t *testing.T) {
	Register("test_fake_hosted", func() Game { return &fakeGame{id: "test_fake_hosted"} })

	g, err := CreateHosted("test_fake_hosted", Host{SessionID: "abc"})
	if err != nil {
		t.Fatalf("CreateHosted() failed: %v", err)
	}
	fg := g.(*fakeGame)
	if fg.attached == nil || fg.attached.SessionID != "abc" {
		t.Errorf("host was not attached: %+v", fg.attached)
	}

	if _, err := CreateHosted("test_missing", Host{}); err == nil {
		t.Error("CreateHosted() of an unknown game should fail")
	}
}
