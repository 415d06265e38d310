package history

import (
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	h, err := Load(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	h, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHistorySync))
	require.NotNil(t, h)
	assert.Equal(t, 0, h.Len())
}

func TestRememberRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	h, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, h.Remember(100, 7))
	require.NoError(t, h.Remember(200, 9))
	require.NoError(t, h.Remember(100, 8))

	reloaded, err := Load(path)
	require.NoError(t, err)
	id, ok := reloaded.TopLevelCommentID(100)
	assert.True(t, ok)
	assert.Equal(t, 8, id)
	_, ok = reloaded.TopLevelCommentID(300)
	assert.False(t, ok)

	var raw map[string]map[string]int64
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, int64(9), raw["200"]["top_level_comment_id"])
	assert.Contains(t, raw["200"], "timestamp")
}

func TestRememberTimestampsAreStrictlyIncreasing(t *testing.T) {
	h, err := Load("")
	require.NoError(t, err)
	fixed := time.Unix(1_700_000_000, 0)
	h.now = func() time.Time { return fixed }

	require.NoError(t, h.Remember(1, 1))
	require.NoError(t, h.Remember(2, 1))
	assert.Greater(t, h.entries[2].Timestamp, h.entries[1].Timestamp)
}

func TestEvictionKeepsNewestRegardlessOfInsertionOrder(t *testing.T) {
	const total = MaxEntries + 137

	order := rand.New(rand.NewSource(1)).Perm(total)
	h, err := Load(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)
	for _, i := range order {
		h.entries[i+1] = Entry{Timestamp: int64(10_000 + i), TopLevelCommentID: i}
	}

	require.NoError(t, h.Save())
	assert.Equal(t, MaxEntries, h.Len())

	for i := 0; i < total; i++ {
		_, ok := h.TopLevelCommentID(i + 1)
		if i < total-MaxEntries {
			assert.False(t, ok, "entry %d should be evicted", i+1)
		} else {
			assert.True(t, ok, "entry %d should be kept", i+1)
		}
	}
}

func TestSaveFailureIsHistorySyncError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	h, err := Load(filepath.Join(dir, "history.json"))
	require.NoError(t, err)
	h.path = filepath.Join(blocker, "history.json")

	err = h.Remember(1, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHistorySync))

	id, ok := h.TopLevelCommentID(1)
	assert.True(t, ok, "in-memory entry survives a failed save")
	assert.Equal(t, 2, id)
}
