package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"digitalpen/internal/config"
	"digitalpen/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockPostRepository mocks the post repository for handler tests.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) Like(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func newTestServer(repo *MockPostRepository) (*Server, *fiber.App) {
	srv := &Server{
		config: &config.Config{
			JWTSecret:      "test-secret-for-handler-tests-0123456789",
			AdminUsername:  "admin",
			AdminPassword:  "admin123",
			AllowedOrigins: "*",
		},
		postRepo: repo,
	}

	srv.app = fiber.New()
	srv.SetupRoutes(srv.app)
	return srv, srv.app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func adminHeaders(t *testing.T, srv *Server) map[string]string {
	t.Helper()
	token, err := srv.issueAdminToken()
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestGetPosts(t *testing.T) {
	t.Run("Returns posts newest first", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("List", mock.Anything).Return([]*models.Post{
			{ID: 2, Title: "Newer"},
			{ID: 1, Title: "Older"},
		}, nil)
		_, app := newTestServer(repo)

		resp := doJSON(t, app, "GET", "/posts", nil, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		posts := decodeBody[[]models.Post](t, resp)
		require.Len(t, posts, 2)
		assert.Equal(t, "Newer", posts[0].Title)
		repo.AssertExpectations(t)
	})

	t.Run("Empty store returns empty array not null", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("List", mock.Anything).Return([]*models.Post(nil), nil)
		_, app := newTestServer(repo)

		resp := doJSON(t, app, "GET", "/posts", nil, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(raw))
	})
}

func TestGetPost(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(7)).Return(&models.Post{ID: 7, Title: "Seven"}, nil)
		_, app := newTestServer(repo)

		resp := doJSON(t, app, "GET", "/posts/7", nil, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Seven", decodeBody[models.Post](t, resp).Title)
	})

	t.Run("Unknown id is 404", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
		_, app := newTestServer(repo)

		resp := doJSON(t, app, "GET", "/posts/99", nil, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		body := decodeBody[models.ErrorResponse](t, resp)
		assert.Equal(t, "NOT_FOUND", body.Code)
	})

	t.Run("Non-numeric id is 404", func(t *testing.T) {
		repo := new(MockPostRepository)
		_, app := newTestServer(repo)

		resp := doJSON(t, app, "GET", "/posts/abc", nil, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		repo.AssertNotCalled(t, "GetByID")
	})
}

func TestCreatePost(t *testing.T) {
	t.Run("Valid request returns 201 with stored post", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Post).ID = 1
			}).
			Return(nil)
		srv, app := newTestServer(repo)

		resp := doJSON(t, app, "POST", "/posts", models.CreatePostRequest{
			Title:   "Hello",
			Content: "**world**",
		}, adminHeaders(t, srv))
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		post := decodeBody[models.Post](t, resp)
		assert.Equal(t, uint(1), post.ID)
		assert.Equal(t, "Hello", post.Title)
		repo.AssertExpectations(t)
	})

	t.Run("Structured content is flattened before storage", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.Content == "line one\nline two"
		})).Return(nil)
		srv, app := newTestServer(repo)

		resp := doJSON(t, app, "POST", "/posts", fiber.Map{
			"title":   "Rich",
			"content": fiber.Map{"blocks": []fiber.Map{{"text": "line one"}, {"text": "line two"}}},
		}, adminHeaders(t, srv))
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		repo.AssertExpectations(t)
	})

	t.Run("Missing title is 400", func(t *testing.T) {
		repo := new(MockPostRepository)
		srv, app := newTestServer(repo)

		resp := doJSON(t, app, "POST", "/posts", fiber.Map{"content": "body"}, adminHeaders(t, srv))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		body := decodeBody[models.ErrorResponse](t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Unknown field is 400", func(t *testing.T) {
		repo := new(MockPostRepository)
		srv, app := newTestServer(repo)

		resp := doJSON(t, app, "POST", "/posts", fiber.Map{
			"title":   "t",
			"content": "c",
			"author":  "intruder",
		}, adminHeaders(t, srv))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Missing token is 401", func(t *testing.T) {
		repo := new(MockPostRepository)
		_, app := newTestServer(repo)

		resp := doJSON(t, app, "POST", "/posts", models.CreatePostRequest{
			Title:   "Hello",
			Content: "world",
		}, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestUpdatePost(t *testing.T) {
	t.Run("Replaces fields and keeps likes", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(3)).
			Return(&models.Post{ID: 3, Title: "Old", Content: "old", Likes: 9}, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.Title == "New" && p.Likes == 9
		})).Return(nil)
		srv, app := newTestServer(repo)

		resp := doJSON(t, app, "PUT", "/posts/3", models.UpdatePostRequest{
			Title:   "New",
			Content: "new body",
		}, adminHeaders(t, srv))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		post := decodeBody[models.Post](t, resp)
		assert.Equal(t, "New", post.Title)
		assert.Equal(t, 9, post.Likes)
		repo.AssertExpectations(t)
	})

	t.Run("Unknown id is 404", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
		srv, app := newTestServer(repo)

		resp := doJSON(t, app, "PUT", "/posts/99", models.UpdatePostRequest{
			Title:   "New",
			Content: "new body",
		}, adminHeaders(t, srv))
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("Existing post", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Delete", mock.Anything, uint(5)).Return(nil)
		srv, app := newTestServer(repo)

		resp := doJSON(t, app, "DELETE", "/posts/5", nil, adminHeaders(t, srv))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Post deleted successfully", decodeBody[models.DeleteResponse](t, resp).Message)
	})

	t.Run("Unknown id still confirms", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Delete", mock.Anything, uint(12345)).Return(nil)
		srv, app := newTestServer(repo)

		resp := doJSON(t, app, "DELETE", "/posts/12345", nil, adminHeaders(t, srv))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Post deleted successfully", decodeBody[models.DeleteResponse](t, resp).Message)
	})
}

func TestLikePost(t *testing.T) {
	t.Run("Increments by one", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Like", mock.Anything, uint(4)).Return(&models.Post{ID: 4, Likes: 4}, nil)
		_, app := newTestServer(repo)

		resp := doJSON(t, app, "PUT", "/posts/4/like", nil, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, 4, decodeBody[models.Post](t, resp).Likes)
	})

	t.Run("Unknown id is 404", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Like", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
		_, app := newTestServer(repo)

		resp := doJSON(t, app, "PUT", "/posts/99/like", nil, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
