package search

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/muesli/reflow/truncate"

	"github.com/pders01/hnterm/internal/storage"
)

// scanLimit bounds how many seen items one in-memory search scans.
const scanLimit = 5000

// Engine scores seen items in memory. It serves when no index can be
// opened.
type Engine struct {
	store *storage.Store
}

func NewEngine(store *storage.Store) *Engine {
	return &Engine{store: store}
}

func (e *Engine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}

	terms := tokenize(query)
	if len(terms) == 0 {
		return []*Result{}, nil
	}

	items, err := e.store.AllItems(scanLimit)
	if err != nil {
		return nil, err
	}

	var results []*Result
	for _, it := range items {
		if r := e.searchItem(it, terms); r != nil {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (e *Engine) searchItem(it *storage.SeenItem, terms []string) *Result {
	var matches []Match
	var totalScore float64

	if s := scoreField(it.Title, terms, 4.0); s > 0 {
		matches = append(matches, Match{Field: "title", Text: it.Title, Weight: s})
		totalScore += s
	}

	if s := scoreField(it.By, terms, 2.0); s > 0 {
		matches = append(matches, Match{Field: "by", Text: it.By, Weight: s})
		totalScore += s
	}

	if s := scoreField(it.Text, terms, 1.0); s > 0 {
		matches = append(matches, Match{Field: "text", Text: bestSnippet(it.Text, terms, 200), Weight: s})
		totalScore += s
	}

	if s := scoreField(it.URL, terms, 0.5); s > 0 {
		matches = append(matches, Match{Field: "url", Text: it.URL, Weight: s})
		totalScore += s
	}

	if totalScore == 0 {
		return nil
	}
	return &Result{Item: it, Score: totalScore, Matches: matches}
}

// scoreField calculates the relevance of one field.
func scoreField(text string, terms []string, weight float64) float64 {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	var score float64
	matchedTerms := 0

	for _, term := range terms {
		// Exact phrase match
		if strings.Contains(lower, term) {
			score += 2.0
			matchedTerms++
		}

		for _, word := range words {
			switch {
			case word == term:
				score += 1.5
				matchedTerms++
			case strings.HasPrefix(word, term) || strings.HasSuffix(word, term):
				score += 1.0
				matchedTerms++
			case strings.Contains(word, term):
				score += 0.5
				matchedTerms++
			}
		}
	}

	if len(terms) > 1 && matchedTerms > 1 {
		score *= 1.0 + float64(matchedTerms)/float64(len(terms))
	}

	tf := float64(matchedTerms) / float64(len(words))
	score *= 1.0 + math.Log(1.0+tf)

	return score * weight
}

// bestSnippet returns the window of text holding the most terms.
func bestSnippet(text string, terms []string, maxLength int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	windowSize := maxLength / 8
	if windowSize >= len(words) {
		return truncate.StringWithTail(text, uint(maxLength), "…")
	}

	bestScore, bestStart := 0, 0
	for i := 0; i <= len(words)-windowSize; i++ {
		window := strings.ToLower(strings.Join(words[i:i+windowSize], " "))
		score := 0
		for _, term := range terms {
			if strings.Contains(window, term) {
				score++
			}
		}
		if score > bestScore {
			bestScore, bestStart = score, i
		}
	}

	snippet := strings.Join(words[bestStart:bestStart+windowSize], " ")
	return truncate.StringWithTail(snippet, uint(maxLength), "…")
}

// tokenize breaks text into lowercase searchable terms of two or more
// characters.
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			if term := current.String(); len(term) > 1 {
				terms = append(terms, term)
			}
			current.Reset()
		}
	}

	if current.Len() > 1 {
		terms = append(terms, current.String())
	}

	return terms
}
