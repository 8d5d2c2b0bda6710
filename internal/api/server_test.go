package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/litnotes/litnotes/internal/library"
	"github.com/litnotes/litnotes/internal/onboarding"
	"github.com/litnotes/litnotes/internal/search"
	"github.com/litnotes/litnotes/internal/sse"
	"github.com/litnotes/litnotes/internal/store"
)

// testServer wraps the API server for testing.
type testServer struct {
	*Server
	api     humatest.TestAPI
	store   *store.Failing
	cleanup func()
}

// setupTestServer creates a server over an in-memory store seeded with the sample books.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	st := store.NewFailing(store.NewMemory())

	repo, err := library.Open(context.Background(), library.Options{Store: st, Logger: logger})
	require.NoError(t, err)

	index, err := search.NewNoteIndex(search.Options{Logger: logger})
	require.NoError(t, err)
	repo.Subscribe(index.Listener())
	require.NoError(t, index.Rebuild(repo.Notes()))

	sseManager := sse.NewManager(repo.Notifier(), logger)

	s := NewServer(Deps{
		Library:    repo,
		Onboarding: onboarding.New(st, logger),
		Index:      index,
		SSEManager: sseManager,
		SSEHandler: sse.NewHandler(sseManager, repo, logger),
	}, logger)

	cleanup := func() {
		_ = sseManager.Shutdown()
		_ = index.Close()
		_ = st.Close()
	}

	return &testServer{
		Server:  s,
		api:     humatest.Wrap(t, s.api),
		store:   st,
		cleanup: cleanup,
	}
}

// decode unmarshals a response body into T.
func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out), resp.Body.String())
	return out
}

// firstBook returns the first book in library order.
func (ts *testServer) firstBook(t *testing.T) BookResponse {
	t.Helper()
	list := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books"))
	require.NotEmpty(t, list.Books)
	return list.Books[0]
}
