package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/litnotes/litnotes/internal/domain"
	domainerrors "github.com/litnotes/litnotes/internal/errors"
	"github.com/litnotes/litnotes/internal/search"
	"github.com/litnotes/litnotes/internal/views"
)

func (s *Server) registerNoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listNotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes",
		Summary:     "List notes",
		Description: "Returns notes matching a case-insensitive substring of content or book title, newest first",
		Tags:        []string{"Notes"},
	}, s.handleListNotes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addNote",
		Method:        http.MethodPost,
		Path:          "/api/v1/notes",
		Summary:       "Add note",
		Description:   "Adds a note to an existing book",
		Tags:          []string{"Notes"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchNotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/fulltext",
		Summary:     "Full-text note search",
		Description: "Relevance-ranked search over note content and book title",
		Tags:        []string{"Notes", "Search"},
	}, s.handleSearchNotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getNote",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/{id}",
		Summary:     "Get note",
		Description: "Returns a note by ID",
		Tags:        []string{"Notes"},
	}, s.handleGetNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateNote",
		Method:      http.MethodPut,
		Path:        "/api/v1/notes/{id}",
		Summary:     "Update note",
		Description: "Replaces the content and page number of a note",
		Tags:        []string{"Notes"},
	}, s.handleUpdateNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteNote",
		Method:      http.MethodDelete,
		Path:        "/api/v1/notes/{id}",
		Summary:     "Delete note",
		Description: "Deletes a note",
		Tags:        []string{"Notes"},
	}, s.handleDeleteNote)
}

// === DTOs ===

// NoteResponse contains note data in API responses.
type NoteResponse struct {
	ID         string    `json:"id" doc:"Note ID"`
	BookID     string    `json:"book_id" doc:"Book the note belongs to"`
	BookTitle  string    `json:"book_title" doc:"Book title at the time the note was written"`
	Content    string    `json:"content" doc:"Note text"`
	PageNumber *int      `json:"page_number,omitempty" doc:"Page the note refers to"`
	CreatedAt  time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt  time.Time `json:"updated_at" doc:"Last update time"`
}

// NoteOutput wraps a single note for Huma.
type NoteOutput struct {
	Body NoteResponse
}

// ListNotesResponse contains a list of notes.
type ListNotesResponse struct {
	Notes []NoteResponse `json:"notes" doc:"Notes"`
	Total int            `json:"total" doc:"Number of notes returned"`
}

// ListNotesOutput wraps the list notes response for Huma.
type ListNotesOutput struct {
	Body ListNotesResponse
}

// ListNotesInput contains parameters for listing notes.
type ListNotesInput struct {
	Query string `query:"q" doc:"Case-insensitive text matched against content and book title"`
}

// AddNoteRequest is the request body for adding a note.
type AddNoteRequest struct {
	BookID     string `json:"book_id" validate:"required" doc:"Book ID"`
	Content    string `json:"content" validate:"required,max=10000" doc:"Note text"`
	PageNumber *int   `json:"page_number,omitempty" validate:"omitempty,gte=0" doc:"Page the note refers to"`
}

// AddNoteInput wraps the add note request for Huma.
type AddNoteInput struct {
	Body AddNoteRequest
}

// UpdateNoteRequest is the request body for updating a note.
type UpdateNoteRequest struct {
	Content    string `json:"content" validate:"required,max=10000" doc:"Note text"`
	PageNumber *int   `json:"page_number,omitempty" validate:"omitempty,gte=0" doc:"Page the note refers to; omit to clear"`
}

// UpdateNoteInput wraps the update note request for Huma.
type UpdateNoteInput struct {
	ID   string `path:"id" doc:"Note ID"`
	Body UpdateNoteRequest
}

// NoteIDInput identifies a note by path.
type NoteIDInput struct {
	ID string `path:"id" doc:"Note ID"`
}

// SearchNotesInput contains parameters for full-text note search.
type SearchNotesInput struct {
	Query  string `query:"q" doc:"Search query; empty matches every note"`
	BookID string `query:"book_id" doc:"Restrict results to one book"`
	Limit  int    `query:"limit" doc:"Results per page (default 20)" minimum:"0" maximum:"100"`
	Offset int    `query:"offset" doc:"Results to skip" minimum:"0"`
}

// SearchNotesOutput wraps the search result for Huma.
type SearchNotesOutput struct {
	Body *search.Result
}

// === Handlers ===

func (s *Server) handleListNotes(_ context.Context, input *ListNotesInput) (*ListNotesOutput, error) {
	return listNotes(views.SearchedNotes(s.library.Notes(), input.Query)), nil
}

func (s *Server) handleAddNote(ctx context.Context, input *AddNoteInput) (*NoteOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	// ID, book title and timestamps are assigned by the library.
	note, ok := s.library.AddNote(ctx, domain.Note{
		BookID:     input.Body.BookID,
		Content:    input.Body.Content,
		PageNumber: input.Body.PageNumber,
	})
	if !ok {
		return nil, bookNotFound(input.Body.BookID)
	}

	s.logger.Info("note added", "note_id", note.ID, "book_id", note.BookID)

	return &NoteOutput{Body: toNoteResponse(note)}, nil
}

func (s *Server) handleSearchNotes(ctx context.Context, input *SearchNotesInput) (*SearchNotesOutput, error) {
	if s.index == nil {
		return nil, huma.Error503ServiceUnavailable("search index not configured")
	}

	result, err := s.index.Search(ctx, search.Params{
		Query:  input.Query,
		BookID: input.BookID,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "search failed")
	}

	return &SearchNotesOutput{Body: result}, nil
}

func (s *Server) handleGetNote(_ context.Context, input *NoteIDInput) (*NoteOutput, error) {
	note, ok := s.library.Note(input.ID)
	if !ok {
		return nil, noteNotFound(input.ID)
	}
	return &NoteOutput{Body: toNoteResponse(note)}, nil
}

func (s *Server) handleUpdateNote(ctx context.Context, input *UpdateNoteInput) (*NoteOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	// BookID and CreatedAt are kept by the library; only content and page change.
	if !s.library.UpdateNote(ctx, domain.Note{
		ID:         input.ID,
		Content:    input.Body.Content,
		PageNumber: input.Body.PageNumber,
	}) {
		return nil, noteNotFound(input.ID)
	}

	note, ok := s.library.Note(input.ID)
	if !ok {
		return nil, noteNotFound(input.ID)
	}
	return &NoteOutput{Body: toNoteResponse(note)}, nil
}

func (s *Server) handleDeleteNote(ctx context.Context, input *NoteIDInput) (*struct{}, error) {
	if !s.library.DeleteNote(ctx, input.ID) {
		return nil, noteNotFound(input.ID)
	}

	s.logger.Info("note deleted", "note_id", input.ID)

	return nil, nil
}

// === Helpers ===

func noteNotFound(noteID string) error {
	return domainerrors.NotFoundf("note %s not found", noteID)
}

func toNoteResponse(n domain.Note) NoteResponse {
	return NoteResponse{
		ID:         n.ID,
		BookID:     n.BookID,
		BookTitle:  n.BookTitle,
		Content:    n.Content,
		PageNumber: n.PageNumber,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func listNotes(notes []domain.Note) *ListNotesOutput {
	resp := make([]NoteResponse, len(notes))
	for i, n := range notes {
		resp[i] = toNoteResponse(n)
	}
	return &ListNotesOutput{
		Body: ListNotesResponse{
			Notes: resp,
			Total: len(resp),
		},
	}
}
