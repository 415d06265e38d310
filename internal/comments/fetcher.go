// Package comments walks the comment tree of an item level by level.
package comments

import (
	"context"
	"fmt"

	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/hnapi"
)

// BatchFetcher fetches a set of items concurrently, dropping placeholders.
type BatchFetcher interface {
	FetchItems(ctx context.Context, ids []int) ([]hnapi.Item, error)
}

// Fetch retrieves rootIDs and all their descendants, one batch request per
// tree level. IDs present in cached are skipped at every level unless force
// is set. cached is read once and never updated during the walk.
//
// The returned map only holds items fetched by this call. Any batch error
// aborts the walk and no partial result is returned.
func Fetch(ctx context.Context, f BatchFetcher, rootIDs []int, cached map[int]struct{}, force bool) (map[int]hnapi.Item, error) {
	fetched := make(map[int]hnapi.Item)

	level := filter(rootIDs, cached, force)
	for depth := 0; len(level) > 0; depth++ {
		debuglog.WithFields(map[string]any{"depth": depth, "ids": len(level)}).Debugf("fetching comment level")

		items, err := f.FetchItems(ctx, level)
		if err != nil {
			return nil, fmt.Errorf("fetching comment level %d: %w", depth, err)
		}

		var next []int
		for _, it := range items {
			fetched[it.ID] = it
			next = append(next, filter(it.Kids, cached, force)...)
		}
		level = next
	}

	return fetched, nil
}

func filter(ids []int, cached map[int]struct{}, force bool) []int {
	if force {
		return append([]int(nil), ids...)
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := cached[id]; ok {
			continue
		}
		out = append(out, id)
	}
	return out
}
