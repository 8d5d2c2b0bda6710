package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/litnotes/litnotes/internal/domain"
	domainerrors "github.com/litnotes/litnotes/internal/errors"
	"github.com/litnotes/litnotes/internal/views"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns books filtered by genre, then by a case-insensitive text match on title, author, or genre",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Add book",
		Description:   "Adds a book to the library",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTrendingBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/trending",
		Summary:     "Trending books",
		Description: "Returns books flagged as trending, in library order",
		Tags:        []string{"Books"},
	}, s.handleTrendingBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRecommendedBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/recommended",
		Summary:     "Recommended books",
		Description: "Returns books in the favorite genres by rating, or the top rated books when none match",
		Tags:        []string{"Books"},
	}, s.handleRecommendedBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReadingBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/reading",
		Summary:     "Currently reading",
		Description: "Returns books with at least one page read, in library order. Finished books are included; check is_finished.",
		Tags:        []string{"Books"},
	}, s.handleReadingBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Description: "Replaces every field of a book",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}",
		Summary:     "Delete book",
		Description: "Deletes a book and every note attached to it",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReadingProgress",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}/progress",
		Summary:     "Update reading progress",
		Description: "Sets the current page; it must be between 1 and the book's page count",
		Tags:        []string{"Books"},
	}, s.handleUpdateProgress)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBookNotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/notes",
		Summary:     "List book notes",
		Description: "Returns the notes for a book, newest first",
		Tags:        []string{"Books", "Notes"},
	}, s.handleListBookNotes)
}

// === DTOs ===

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID              string  `json:"id" doc:"Book ID"`
	Title           string  `json:"title" doc:"Title"`
	Author          string  `json:"author" doc:"Author"`
	Description     string  `json:"description" doc:"Description"`
	CoverImage      string  `json:"cover_image" doc:"Cover image URL"`
	Genre           string  `json:"genre" doc:"Genre"`
	Rating          float64 `json:"rating" doc:"Rating from 0 to 5"`
	TotalPages      int     `json:"total_pages" doc:"Page count"`
	CurrentPage     int     `json:"current_page" doc:"Current page"`
	IsTrending      bool    `json:"is_trending" doc:"Shown in the trending view"`
	PublishedYear   int     `json:"published_year" doc:"Year of publication"`
	ProgressPercent int     `json:"progress_percent" doc:"Reading progress, truncated percent"`
	IsFinished      bool    `json:"is_finished" doc:"Whether the current page reached the last page"`
}

// BookOutput wraps a single book for Huma.
type BookOutput struct {
	Body BookResponse
}

// ListBooksResponse contains a list of books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"Books"`
	Total int            `json:"total" doc:"Number of books returned"`
}

// ListBooksOutput wraps the list books response for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// ListBooksInput contains parameters for listing books.
type ListBooksInput struct {
	Genre string `query:"genre" doc:"Genre to filter by; empty or All disables the filter"`
	Query string `query:"q" doc:"Case-insensitive text matched against title, author, and genre"`
}

// BookRequest is the request body for adding or replacing a book.
type BookRequest struct {
	Title         string  `json:"title" validate:"required,max=500" doc:"Title"`
	Author        string  `json:"author" validate:"required,max=200" doc:"Author"`
	Description   string  `json:"description,omitempty" validate:"max=5000" doc:"Description"`
	CoverImage    string  `json:"cover_image,omitempty" validate:"max=2000" doc:"Cover image URL"`
	Genre         string  `json:"genre" validate:"required,max=100" doc:"Genre"`
	Rating        float64 `json:"rating,omitempty" validate:"gte=0,lte=5" doc:"Rating from 0 to 5"`
	TotalPages    int     `json:"total_pages" validate:"gte=0" doc:"Page count"`
	CurrentPage   int     `json:"current_page,omitempty" validate:"gte=0" doc:"Current page"`
	IsTrending    bool    `json:"is_trending,omitempty" doc:"Shown in the trending view"`
	PublishedYear int     `json:"published_year,omitempty" doc:"Year of publication"`
}

// AddBookInput wraps the add book request for Huma.
type AddBookInput struct {
	Body BookRequest
}

// BookIDInput identifies a book by path.
type BookIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// UpdateBookInput wraps the update book request for Huma.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body BookRequest
}

// ProgressRequest is the request body for updating reading progress.
type ProgressRequest struct {
	CurrentPage int `json:"current_page" doc:"New current page"`
}

// UpdateProgressInput wraps the progress request for Huma.
type UpdateProgressInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body ProgressRequest
}

// === Handlers ===

func (s *Server) handleListBooks(_ context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	return listBooks(views.Filtered(s.library.Books(), input.Genre, input.Query)), nil
}

func (s *Server) handleAddBook(ctx context.Context, input *AddBookInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	book := s.library.AddBook(ctx, input.Body.toBook(""))

	s.logger.Info("book added", "book_id", book.ID, "title", book.Title)

	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleTrendingBooks(_ context.Context, _ *struct{}) (*ListBooksOutput, error) {
	return listBooks(views.Trending(s.library.Books())), nil
}

func (s *Server) handleRecommendedBooks(_ context.Context, _ *struct{}) (*ListBooksOutput, error) {
	snap := s.library.Snapshot()
	return listBooks(views.Recommended(snap.Books, snap.Preferences)), nil
}

func (s *Server) handleReadingBooks(_ context.Context, _ *struct{}) (*ListBooksOutput, error) {
	return listBooks(views.CurrentlyReading(s.library.Books())), nil
}

func (s *Server) handleGetBook(_ context.Context, input *BookIDInput) (*BookOutput, error) {
	book, ok := s.library.Book(input.ID)
	if !ok {
		return nil, bookNotFound(input.ID)
	}
	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	if !s.library.UpdateBook(ctx, input.Body.toBook(input.ID)) {
		return nil, bookNotFound(input.ID)
	}

	book, ok := s.library.Book(input.ID)
	if !ok {
		// Deleted concurrently.
		return nil, bookNotFound(input.ID)
	}
	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookIDInput) (*struct{}, error) {
	if !s.library.DeleteBook(ctx, input.ID) {
		return nil, bookNotFound(input.ID)
	}

	s.logger.Info("book deleted", "book_id", input.ID)

	return nil, nil
}

func (s *Server) handleUpdateProgress(ctx context.Context, input *UpdateProgressInput) (*BookOutput, error) {
	book, ok := s.library.Book(input.ID)
	if !ok {
		return nil, bookNotFound(input.ID)
	}

	page := input.Body.CurrentPage
	if !book.IsValidProgress(page) {
		return nil, domainerrors.ValidationWithDetails(
			"current_page must be between 1 and total_pages",
			map[string]int{"current_page": page, "total_pages": book.TotalPages},
		)
	}

	if !s.library.UpdateReadingProgress(ctx, input.ID, page) {
		return nil, bookNotFound(input.ID)
	}

	book.CurrentPage = page
	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleListBookNotes(_ context.Context, input *BookIDInput) (*ListNotesOutput, error) {
	if _, ok := s.library.Book(input.ID); !ok {
		return nil, bookNotFound(input.ID)
	}
	return listNotes(s.library.NotesForBook(input.ID)), nil
}

// === Helpers ===

func bookNotFound(bookID string) error {
	return domainerrors.NotFoundf("book %s not found", bookID)
}

func (r BookRequest) toBook(bookID string) domain.Book {
	return domain.NewBook(domain.BookParams{
		ID:            bookID,
		Title:         r.Title,
		Author:        r.Author,
		Description:   r.Description,
		CoverImage:    r.CoverImage,
		Genre:         r.Genre,
		Rating:        r.Rating,
		TotalPages:    r.TotalPages,
		CurrentPage:   r.CurrentPage,
		IsTrending:    r.IsTrending,
		PublishedYear: r.PublishedYear,
	})
}

func toBookResponse(b domain.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Description:     b.Description,
		CoverImage:      b.CoverImage,
		Genre:           b.Genre,
		Rating:          b.Rating,
		TotalPages:      b.TotalPages,
		CurrentPage:     b.CurrentPage,
		IsTrending:      b.IsTrending,
		PublishedYear:   b.PublishedYear,
		ProgressPercent: b.ProgressPercent(),
		IsFinished:      b.IsFinished(),
	}
}

func listBooks(books []domain.Book) *ListBooksOutput {
	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = toBookResponse(b)
	}
	return &ListBooksOutput{
		Body: ListBooksResponse{
			Books: resp,
			Total: len(resp),
		},
	}
}
