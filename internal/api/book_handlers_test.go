package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooks_Seeded(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/books")
	require.Equal(t, http.StatusOK, resp.Code)

	list := decode[ListBooksResponse](t, resp)
	assert.Equal(t, 8, list.Total)
	assert.Equal(t, "The Great Gatsby", list.Books[0].Title)
	assert.Equal(t, 25, list.Books[0].ProgressPercent)
}

func TestListBooks_Filters(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	classics := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books?genre=Classic"))
	assert.Equal(t, 3, classics.Total)

	all := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books?genre=All"))
	assert.Equal(t, 8, all.Total)

	// Genre first, then text.
	filtered := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books?genre=Classic&q=gatsby"))
	require.Equal(t, 1, filtered.Total)
	assert.Equal(t, "The Great Gatsby", filtered.Books[0].Title)

	byAuthor := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books?q=TOLKIEN"))
	require.Equal(t, 1, byAuthor.Total)
	assert.Equal(t, "The Hobbit", byAuthor.Books[0].Title)

	none := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books?genre=Romance&q=dune"))
	assert.Equal(t, 0, none.Total)
	assert.NotNil(t, none.Books)
}

func TestAddBook(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"title":       "Kindred",
		"author":      "Octavia E. Butler",
		"genre":       "Science Fiction",
		"rating":      4.4,
		"total_pages": 264,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	book := decode[BookResponse](t, resp)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "Kindred", book.Title)
	assert.Equal(t, 0, book.CurrentPage)

	got := ts.api.Get("/api/v1/books/" + book.ID)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, book, decode[BookResponse](t, got))

	list := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books"))
	assert.Equal(t, 9, list.Total)
	assert.Equal(t, book.ID, list.Books[8].ID)
}

func TestAddBook_Validation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"title": "", "author": "Anon", "genre": "Classic", "total_pages": 10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	apiErr := decode[APIError](t, resp)
	assert.Equal(t, "VALIDATION", apiErr.Code)
	assert.Contains(t, apiErr.Message, "title")

	resp = ts.api.Post("/api/v1/books", map[string]any{
		"title": "Bad", "author": "Anon", "genre": "Classic", "total_pages": 10, "rating": 7,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	list := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books"))
	assert.Equal(t, 8, list.Total)
}

func TestGetBook_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/books/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", decode[APIError](t, resp).Code)
}

func TestUpdateBook(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	first := ts.firstBook(t)

	resp := ts.api.Put("/api/v1/books/"+first.ID, map[string]any{
		"title":        "The Great Gatsby (Annotated)",
		"author":       first.Author,
		"genre":        first.Genre,
		"rating":       first.Rating,
		"total_pages":  first.TotalPages,
		"current_page": 180,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	book := decode[BookResponse](t, resp)
	assert.Equal(t, first.ID, book.ID)
	assert.Equal(t, "The Great Gatsby (Annotated)", book.Title)
	assert.True(t, book.IsFinished)

	missing := ts.api.Put("/api/v1/books/missing", map[string]any{
		"title": "X", "author": "Y", "genre": "Classic", "total_pages": 1,
	})
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestDeleteBook_CascadesNotes(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	first := ts.firstBook(t)
	resp := ts.api.Post("/api/v1/notes", map[string]any{"book_id": first.ID, "content": "green light"})
	require.Equal(t, http.StatusCreated, resp.Code)

	del := ts.api.Delete("/api/v1/books/" + first.ID)
	assert.Equal(t, http.StatusNoContent, del.Code)

	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/books/"+first.ID).Code)
	notes := decode[ListNotesResponse](t, ts.api.Get("/api/v1/notes"))
	assert.Equal(t, 0, notes.Total)

	assert.Equal(t, http.StatusNotFound, ts.api.Delete("/api/v1/books/"+first.ID).Code)
}

func TestUpdateProgress(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	first := ts.firstBook(t)
	require.Equal(t, 180, first.TotalPages)

	resp := ts.api.Put("/api/v1/books/"+first.ID+"/progress", map[string]any{"current_page": 90})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	book := decode[BookResponse](t, resp)
	assert.Equal(t, 90, book.CurrentPage)
	assert.Equal(t, 50, book.ProgressPercent)

	got := decode[BookResponse](t, ts.api.Get("/api/v1/books/"+first.ID))
	assert.Equal(t, 90, got.CurrentPage)
}

func TestUpdateProgress_Guard(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	first := ts.firstBook(t)

	for _, page := range []int{0, -1, 181} {
		resp := ts.api.Put("/api/v1/books/"+first.ID+"/progress", map[string]any{"current_page": page})
		assert.Equal(t, http.StatusBadRequest, resp.Code, "page %d", page)
	}

	got := decode[BookResponse](t, ts.api.Get("/api/v1/books/"+first.ID))
	assert.Equal(t, first.CurrentPage, got.CurrentPage)

	resp := ts.api.Put("/api/v1/books/missing/progress", map[string]any{"current_page": 1})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDerivedBookViews(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	trending := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books/trending"))
	assert.Equal(t, 5, trending.Total)
	for _, b := range trending.Books {
		assert.True(t, b.IsTrending)
	}

	// No favorites: top six by rating.
	recommended := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books/recommended"))
	assert.Equal(t, 6, recommended.Total)
	for i := 1; i < len(recommended.Books); i++ {
		assert.GreaterOrEqual(t, recommended.Books[i-1].Rating, recommended.Books[i].Rating)
	}

	reading := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books/reading"))
	assert.Equal(t, 5, reading.Total)
	for _, b := range reading.Books {
		assert.Positive(t, b.CurrentPage)
		assert.False(t, b.IsFinished)
	}

	// Finishing a book keeps it in the reading list.
	first := ts.firstBook(t)
	resp := ts.api.Put("/api/v1/books/"+first.ID+"/progress", map[string]any{"current_page": first.TotalPages})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	reading = decode[ListBooksResponse](t, ts.api.Get("/api/v1/books/reading"))
	assert.Equal(t, 5, reading.Total)
	finished := 0
	for _, b := range reading.Books {
		if b.IsFinished {
			finished++
			assert.Equal(t, first.ID, b.ID)
		}
	}
	assert.Equal(t, 1, finished)
}

func TestRecommendedBooks_FavoriteGenres(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Put("/api/v1/preferences", map[string]any{
		"favorite_genres":       []string{"Fantasy"},
		"reading_goal":          12,
		"is_dark_mode":          true,
		"notifications_enabled": false,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	recommended := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books/recommended"))
	require.Equal(t, 2, recommended.Total)
	assert.Equal(t, "Harry Potter and the Sorcerer's Stone", recommended.Books[0].Title)
	assert.Equal(t, "The Hobbit", recommended.Books[1].Title)
}
