package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultLimit is the page size used when Params.Limit is not positive.
const DefaultLimit = 20

// Params configures a note search.
type Params struct {
	Query  string // Free text; empty matches every note
	BookID string // Restrict to one book when set
	Limit  int
	Offset int
}

// Result is one page of search hits.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit is a single matching note.
type Hit struct {
	ID         string              `json:"id"`
	BookID     string              `json:"book_id"`
	BookTitle  string              `json:"book_title"`
	Score      float64             `json:"score"`
	Highlights map[string][]string `json:"highlights,omitempty"`
}

// Search runs a relevance-ranked query. Ties, and the empty query, are
// ordered newest first.
func (s *NoteIndex) Search(ctx context.Context, params Params) (*Result, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	req := bleve.NewSearchRequestOptions(buildQuery(params), params.Limit, params.Offset, false)
	req.SortBy([]string{"-_score", "-created_at"})
	req.Fields = []string{"book_id", "book_title"}
	if strings.TrimSpace(params.Query) != "" {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("content")
		req.Highlight.AddField("book_title")
	}

	s.mu.RLock()
	res, err := s.index.SearchInContext(ctx, req)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}

	out := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}
	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		if v, ok := h.Fields["book_id"].(string); ok {
			hit.BookID = v
		}
		if v, ok := h.Fields["book_title"].(string); ok {
			hit.BookTitle = v
		}
		if len(h.Fragments) > 0 {
			hit.Highlights = h.Fragments
		}
		out.Hits = append(out.Hits, hit)
	}
	return out, nil
}

func buildQuery(params Params) query.Query {
	var text query.Query
	if q := strings.TrimSpace(params.Query); q == "" {
		text = bleve.NewMatchAllQuery()
	} else {
		content := bleve.NewMatchQuery(q)
		content.SetField("content")

		title := bleve.NewMatchQuery(q)
		title.SetField("book_title")
		title.SetBoost(0.5)

		text = bleve.NewDisjunctionQuery(content, title)
	}

	if params.BookID == "" {
		return text
	}

	book := bleve.NewTermQuery(params.BookID)
	book.SetField("book_id")
	return bleve.NewConjunctionQuery(text, book)
}
