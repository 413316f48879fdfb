package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-api/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTagService is a mock implementation of service.TagService.
type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) GetAll(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagService) GetByID(ctx context.Context, id int) (*model.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagService) Create(ctx context.Context, req *model.TagRequest) (*model.Tag, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagService) Update(ctx context.Context, id int, req *model.TagRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockTagService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTagRouter(svc *MockTagService) http.Handler {
	h := NewTagHandler(svc, zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/api/tags", h.GetAll)
	r.Post("/api/tags", h.Create)
	r.Get("/api/tags/{id}", h.GetByID)
	r.Put("/api/tags/{id}", h.Update)
	r.Delete("/api/tags/{id}", h.Delete)
	return r
}

func TestTagHandler_GetByID(t *testing.T) {
	t.Run("Success includes tagged products", func(t *testing.T) {
		mockService := new(MockTagService)
		mockService.On("GetByID", mock.Anything, 1).Return(&model.Tag{
			ID:      1,
			TagName: "summer",
			Products: []model.Product{
				{ID: 1, ProductName: "Plain T-Shirt", Price: 14.99, Stock: 14},
			},
		}, nil)
		server := newTagRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/tags/1", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var tag model.Tag
		require.NoError(t, json.NewDecoder(w.Body).Decode(&tag))
		assert.Equal(t, "summer", tag.TagName)
		assert.Len(t, tag.Products, 1)
	})

	t.Run("Not found returns 404", func(t *testing.T) {
		mockService := new(MockTagService)
		mockService.On("GetByID", mock.Anything, 42).Return(nil, model.ErrTagNotFound)
		server := newTagRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/tags/42", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Malformed id returns 400", func(t *testing.T) {
		mockService := new(MockTagService)
		server := newTagRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/tags/abc", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetByID")
	})
}

func TestTagHandler_Create(t *testing.T) {
	t.Run("Success returns 201", func(t *testing.T) {
		mockService := new(MockTagService)
		mockService.On("Create", mock.Anything, mock.Anything).
			Return(&model.Tag{ID: 5, TagName: "clearance"}, nil)
		server := newTagRouter(mockService)

		body, _ := json.Marshal(map[string]any{"tag_name": "clearance"})
		req := httptest.NewRequest(http.MethodPost, "/api/tags", bytes.NewReader(body))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var tag model.Tag
		require.NoError(t, json.NewDecoder(w.Body).Decode(&tag))
		assert.Equal(t, 5, tag.ID)
	})

	t.Run("Missing name returns 400", func(t *testing.T) {
		mockService := new(MockTagService)
		mockService.On("Create", mock.Anything, mock.Anything).
			Return(nil, model.NewValidationError(map[string]string{"tag_name": "is required"}))
		server := newTagRouter(mockService)

		req := httptest.NewRequest(http.MethodPost, "/api/tags", bytes.NewReader([]byte(`{}`)))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTagHandler_UpdateDelete(t *testing.T) {
	t.Run("Update success message", func(t *testing.T) {
		mockService := new(MockTagService)
		mockService.On("Update", mock.Anything, 1, mock.Anything).Return(nil)
		server := newTagRouter(mockService)

		body := []byte(`{"tag_name": "seasonal"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/tags/1", bytes.NewReader(body))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp MessageResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Tag updated successfully", resp.Message)
	})

	t.Run("Delete missing tag returns 404", func(t *testing.T) {
		mockService := new(MockTagService)
		mockService.On("Delete", mock.Anything, 42).Return(model.ErrTagNotFound)
		server := newTagRouter(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/api/tags/42", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
