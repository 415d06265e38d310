// Package history remembers, per top-level item, which top-level comment was
// focused when the item screen was left.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pders01/hnterm/internal/debuglog"
)

// MaxEntries caps the file; the oldest entries are evicted first.
const MaxEntries = 500

// ErrHistorySync marks a failure to read or write the history file.
var ErrHistorySync = errors.New("history synchronization error")

type Entry struct {
	Timestamp         int64 `json:"timestamp"`
	TopLevelCommentID int   `json:"top_level_comment_id"`
}

type History struct {
	path    string
	entries map[int]Entry
	latest  int64
	now     func() time.Time
}

// Load reads the history file at path. A missing file yields an empty
// history. An unreadable file yields an empty history and an error wrapping
// ErrHistorySync so the caller can warn and carry on.
func Load(path string) (*History, error) {
	h := &History{path: path, entries: make(map[int]Entry), now: time.Now}
	if path == "" {
		return h, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return h, nil
		}
		return h, fmt.Errorf("%w: reading %s: %v", ErrHistorySync, path, err)
	}

	var raw map[int]Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return h, fmt.Errorf("%w: decoding %s: %v", ErrHistorySync, path, err)
	}
	for id, e := range raw {
		h.entries[id] = e
		if e.Timestamp > h.latest {
			h.latest = e.Timestamp
		}
	}
	return h, nil
}

// TopLevelCommentID returns the remembered focus for itemID.
func (h *History) TopLevelCommentID(itemID int) (int, bool) {
	e, ok := h.entries[itemID]
	if !ok {
		return 0, false
	}
	return e.TopLevelCommentID, true
}

func (h *History) Len() int {
	return len(h.entries)
}

// Remember records commentID as the focus of itemID and saves the file.
func (h *History) Remember(itemID, commentID int) error {
	ts := h.now().UnixMilli()
	if ts <= h.latest {
		ts = h.latest + 1
	}
	h.latest = ts
	h.entries[itemID] = Entry{Timestamp: ts, TopLevelCommentID: commentID}
	return h.Save()
}

// Save evicts all but the MaxEntries most recent entries and writes the
// file atomically.
func (h *History) Save() error {
	h.evict()
	if h.path == "" {
		return nil
	}

	data, err := json.Marshal(h.entries)
	if err != nil {
		return fmt.Errorf("%w: encoding: %v", ErrHistorySync, err)
	}

	dir := filepath.Dir(h.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrHistorySync, dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHistorySync, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing %s: %v", ErrHistorySync, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrHistorySync, err)
	}
	if err := os.Rename(tmp.Name(), h.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", ErrHistorySync, h.path, err)
	}

	debuglog.Debugf("history saved: %d entries", len(h.entries))
	return nil
}

func (h *History) evict() {
	if len(h.entries) <= MaxEntries {
		return
	}
	ids := make([]int, 0, len(h.entries))
	for id := range h.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := h.entries[ids[i]], h.entries[ids[j]]
		if a.Timestamp != b.Timestamp {
			return a.Timestamp > b.Timestamp
		}
		return ids[i] > ids[j]
	})
	for _, id := range ids[MaxEntries:] {
		delete(h.entries, id)
	}
}
