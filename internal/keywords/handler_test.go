package keywords

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnesscare/wellness-platform/pkg/logging"
)

func newTestRouter(repo Repository) http.Handler {
	h := NewHandler(repo, logging.New("error"))
	r := chi.NewRouter()
	r.Get("/admin/keywords", h.List)
	r.Post("/admin/keywords", h.Upsert)
	r.Put("/admin/keywords/{id}", h.Replace)
	r.Delete("/admin/keywords/{id}", h.Delete)
	return r
}

func TestUpsertAndList(t *testing.T) {
	repo := NewInMemoryRepository()
	router := newTestRouter(repo)

	body := `{"keyword":"Fever","response":"Rest and hydrate."}`
	req := httptest.NewRequest(http.MethodPost, "/admin/keywords", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var entry Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "fever", entry.Keyword)
	assert.NotEmpty(t, entry.ID)

	req = httptest.NewRequest(http.MethodGet, "/admin/keywords", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var listed Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, []string{"Rest and hydrate."}, listed[0].Responses)
}

func TestUpsertMissingFields(t *testing.T) {
	router := newTestRouter(NewInMemoryRepository())

	for _, body := range []string{
		`{"keyword":"fever"}`,
		`{"response":"Rest."}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/admin/keywords", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestReplaceNotFound(t *testing.T) {
	router := newTestRouter(NewInMemoryRepository())

	body := `{"keyword":"fever","responses":["Rest."]}`
	req := httptest.NewRequest(http.MethodPut, "/admin/keywords/no-such-id", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReplaceAndDelete(t *testing.T) {
	repo := NewInMemoryRepository()
	router := newTestRouter(repo)

	created, err := repo.Upsert(context.Background(), "diet", "Eat vegetables.")
	require.NoError(t, err)

	body := `{"keyword":"diet","responses":["Eat vegetables.","Avoid sugar."]}`
	req := httptest.NewRequest(http.MethodPut, "/admin/keywords/"+created.ID, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var replaced Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replaced))
	assert.Len(t, replaced.Responses, 2)

	req = httptest.NewRequest(http.MethodDelete, "/admin/keywords/"+created.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/admin/keywords/"+created.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
