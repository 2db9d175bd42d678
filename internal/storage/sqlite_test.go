package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func saveScores(t *testing.T, store *Store, gameID string, scores ...int) {
	t.Helper()
	for _, s := range scores {
		_, err := store.SaveScore(ScoreEntry{GameID: gameID, Score: s})
		require.NoError(t, err)
	}
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	saveScores(t, store, "stack", 7)
	require.NoError(t, store.Settings("stack").Set("highScore", "7"))
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	high, err := store.HighScore("stack")
	require.NoError(t, err)
	assert.Equal(t, 7, high)

	v, ok, err := store.Settings("stack").Get("highScore")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "7", v)
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveScore(ScoreEntry{
		GameID:    "stack",
		SessionID: "4a3c2b1e-0000-4000-8000-000000000001",
		Score:     42,
		Perfects:  9,
		BestCombo: 5,
		Duration:  83 * time.Second,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	saveScores(t, store, "stack", 10, 99)
	saveScores(t, store, "stack_zen", 500)

	scores, err := store.TopScores("stack", 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	assert.Equal(t, []int{99, 42, 10}, []int{scores[0].Score, scores[1].Score, scores[2].Score})

	e := scores[1]
	assert.Equal(t, id, e.ID)
	assert.Equal(t, "stack", e.GameID)
	assert.Equal(t, "4a3c2b1e-0000-4000-8000-000000000001", e.SessionID)
	assert.Equal(t, 9, e.Perfects)
	assert.Equal(t, 5, e.BestCombo)
	assert.Equal(t, 83*time.Second, e.Duration)
	assert.False(t, e.CreatedAt.IsZero(), "created_at should be parsed")
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "stack", 1, 2, 3, 4, 5)

	scores, err := store.TopScores("stack", 3)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 5, scores[0].Score)
	assert.Equal(t, 3, scores[2].Score)

	all, err := store.TopScores("stack", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5, "non-positive limit falls back to 10")
}

func TestStoreTopScoresTiesKeepOrder(t *testing.T) {
	store := openTestStore(t)
	first, err := store.SaveScore(ScoreEntry{GameID: "stack", Score: 8})
	require.NoError(t, err)
	second, err := store.SaveScore(ScoreEntry{GameID: "stack", Score: 8})
	require.NoError(t, err)

	scores, err := store.TopScores("stack", 10)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, first, scores[0].ID)
	assert.Equal(t, second, scores[1].ID)
}

func TestStoreRecentScores(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "stack", 30, 10, 20)

	recent, err := store.RecentScores("stack", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 20, recent[0].Score)
	assert.Equal(t, 10, recent[1].Score)
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("stack")
	require.NoError(t, err)
	assert.Equal(t, 0, high)

	saveScores(t, store, "stack", 12, 31, 20)
	saveScores(t, store, "stack_hard", 99)

	high, err = store.HighScore("stack")
	require.NoError(t, err)
	assert.Equal(t, 31, high)
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "stack", 100, 200)
	saveScores(t, store, "stack_zen", 300)
	require.NoError(t, store.Settings("stack").Set("highScore", "200"))
	require.NoError(t, store.Settings("stack_zen").Set("highScore", "300"))

	require.NoError(t, store.ClearScores("stack"))

	scores, err := store.TopScores("stack", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)

	_, ok, err := store.Settings("stack").Get("highScore")
	require.NoError(t, err)
	assert.False(t, ok, "stored best should be cleared with the history")

	zen, err := store.TopScores("stack_zen", 10)
	require.NoError(t, err)
	assert.Len(t, zen, 1, "other variants are untouched")
	_, ok, _ = store.Settings("stack_zen").Get("highScore")
	assert.True(t, ok)
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("stack")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.GamesCount)
	assert.True(t, empty.LastPlayed.IsZero())

	_, err = store.SaveScore(ScoreEntry{GameID: "stack", Score: 10, BestCombo: 2})
	require.NoError(t, err)
	_, err = store.SaveScore(ScoreEntry{GameID: "stack", Score: 20, BestCombo: 6})
	require.NoError(t, err)
	saveScores(t, store, "stack_zen", 4)

	stats, err := store.GetGameStats("stack")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 20, stats.HighScore)
	assert.InDelta(t, 15.0, stats.AvgScore, 1e-9)
	assert.Equal(t, int64(30), stats.TotalScore)
	assert.Equal(t, 6, stats.BestCombo)
	assert.False(t, stats.LastPlayed.IsZero())

	all, err := store.GetAllGamesStats()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all["stack_zen"].GamesCount)
	assert.Equal(t, 20, all["stack"].HighScore)
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 3, 9, 17, 4, 5, 0, time.UTC)

	assert.Equal(t, want, parseTime(want))
	assert.Equal(t, want, parseTime("2024-03-09 17:04:05"))
	assert.Equal(t, want, parseTime("2024-03-09T17:04:05Z"))
	assert.True(t, parseTime("garbage").IsZero())
	assert.True(t, parseTime(nil).IsZero())
}
