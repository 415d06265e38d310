package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/storage"
)

type BleveEngine struct {
	store *storage.Store
	idx   bleve.Index
}

// NewBleveEngine creates or opens a Bleve index at indexPath and indexes
// every item already in the store.
func NewBleveEngine(store *storage.Store, indexPath string) (*BleveEngine, error) {
	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	idx, err := bleve.Open(indexPath)
	if err != nil {
		idx, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("creating index: %w", err)
		}
	}

	be := &BleveEngine{store: store, idx: idx}
	if err := be.reindexAll(); err != nil {
		idx.Close()
		return nil, err
	}
	return be, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true
	title.IncludeTermVectors = true

	text := bleve.NewTextFieldMapping()
	text.Analyzer = standard.Name
	text.Store = false

	by := bleve.NewTextFieldMapping()
	by.Analyzer = standard.Name
	by.Store = true

	url := bleve.NewTextFieldMapping()
	url.Analyzer = standard.Name
	url.Store = true

	kind := bleve.NewKeywordFieldMapping()
	kind.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("text", text)
	dm.AddFieldMappingsAt("by", by)
	dm.AddFieldMappingsAt("url", url)
	dm.AddFieldMappingsAt("kind", kind)

	im.DefaultMapping = dm
	return im
}

func document(s storage.SeenItem) map[string]any {
	return map[string]any{
		"kind":  s.Kind,
		"title": s.Title,
		"text":  s.Text,
		"by":    s.By,
		"url":   s.URL,
	}
}

func (b *BleveEngine) reindexAll() error {
	items, err := b.store.AllItems(0)
	if err != nil {
		return err
	}

	batch := b.idx.NewBatch()
	for _, it := range items {
		_ = batch.Index(docID(it.ID), document(*it))
	}
	return b.idx.Batch(batch)
}

type weightedField struct {
	name   string
	boost  float64
	prefix float64
}

var searchFields = []weightedField{
	{"title", 4.0, 3.5},
	{"text", 1.0, 0.8},
	{"by", 2.0, 1.8},
	{"url", 0.5, 0.3},
}

func (b *BleveEngine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}

	var qs []bleveQuery.Query
	for _, tok := range tokenize(query) {
		for _, f := range searchFields {
			mq := bleve.NewMatchQuery(tok)
			mq.SetField(f.name)
			mq.SetBoost(f.boost)
			pq := bleve.NewPrefixQuery(strings.ToLower(tok))
			pq.SetField(f.name)
			pq.SetBoost(f.prefix)
			qs = append(qs, mq, pq)
		}
	}
	if len(qs) == 0 {
		return []*Result{}, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	req.Fields = []string{"title", "by", "url", "kind"}
	res, err := b.idx.Search(req)
	if err != nil {
		return nil, err
	}

	out := make([]*Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		id, err := strconv.Atoi(strings.TrimPrefix(h.ID, "item:"))
		if err != nil {
			continue
		}
		seen, err := b.store.GetItem(id)
		if err != nil {
			seen = &storage.SeenItem{ID: id}
			if t, ok := h.Fields["title"].(string); ok {
				seen.Title = t
			}
			if by, ok := h.Fields["by"].(string); ok {
				seen.By = by
			}
			if u, ok := h.Fields["url"].(string); ok {
				seen.URL = u
			}
			if k, ok := h.Fields["kind"].(string); ok {
				seen.Kind = k
			}
		}
		out = append(out, &Result{Item: seen, Score: h.Score})
	}
	return out, nil
}

// OnItemsSeen indexes the provided items.
func (b *BleveEngine) OnItemsSeen(items []storage.SeenItem) {
	if len(items) == 0 {
		return
	}
	batch := b.idx.NewBatch()
	for _, it := range items {
		_ = batch.Index(docID(it.ID), document(it))
	}
	if err := b.idx.Batch(batch); err != nil {
		debuglog.Warnf("indexing %d seen items: %v", len(items), err)
	}
}

// DocCount reports total documents in the index.
func (b *BleveEngine) DocCount() (int, error) {
	n, err := b.idx.DocCount()
	return int(n), err
}

func (b *BleveEngine) Close() error {
	return b.idx.Close()
}

func docID(id int) string { return "item:" + strconv.Itoa(id) }
