package stack

import (
	"strconv"
	"sync"
)

// HighScoreKey is the single key the best score is stored under.
const HighScoreKey = "highScore"

// KV is a string key-value store. It is the only persistence the game uses.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Record is the verdict on a final score.
type Record struct {
	Score     int  // The final score that was checked
	Best      int  // Best score after the check
	NewRecord bool // Score beat the stored best and was written
}

// HighScores reads and updates the stored best score.
type HighScores struct {
	kv  KV
	key string
}

// NewHighScores keeps the best score in kv under HighScoreKey.
func NewHighScores(kv KV) *HighScores {
	return &HighScores{kv: kv, key: HighScoreKey}
}

// Best returns the stored best score, or 0 if none or unparseable.
func (h *HighScores) Best() (int, error) {
	v, ok, err := h.kv.Get(h.key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	best, err := strconv.Atoi(v)
	if err != nil {
		return 0, nil
	}
	return best, nil
}

// Check compares a final score with the stored best and writes it if higher.
func (h *HighScores) Check(score int) (Record, error) {
	best, err := h.Best()
	if err != nil {
		return Record{Score: score}, err
	}
	if score <= best {
		return Record{Score: score, Best: best}, nil
	}
	if err := h.kv.Set(h.key, strconv.Itoa(score)); err != nil {
		return Record{Score: score, Best: best}, err
	}
	return Record{Score: score, Best: score, NewRecord: true}, nil
}

// MemoryKV is an in-process KV, used when no database is available.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}
