package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-lookup-service/internal/catalog"
	"movie-lookup-service/internal/models"
	"movie-lookup-service/internal/registry"
	"movie-lookup-service/internal/service"
)

func newTestApp() *fiber.App {
	cat := catalog.New()
	cat.Load(catalog.DefaultRecords())
	store := registry.NewMemoryStore()

	lookupHandler := NewLookupHandler(service.NewLookupService(cat, store, nil))
	userHandler := NewUserHandler(service.NewUserService(store))

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/health", lookupHandler.Health)
	api.Post("/search", lookupHandler.Search)
	api.Post("/users", userHandler.RegisterUser)
	api.Post("/users/:id/favorites", userHandler.AddFavorite)
	api.Get("/users/:id/favorites", userHandler.GetFavorites)
	api.Get("/users/:id/history", userHandler.GetHistory)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	app := newTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	t.Run("MissingUserID", func(t *testing.T) {
		app := newTestApp()
		resp := doJSON(t, app, http.MethodPost, "/api/v1/search", `{"query":"matrix"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("MissingQuery", func(t *testing.T) {
		app := newTestApp()
		resp := doJSON(t, app, http.MethodPost, "/api/v1/search", `{"user_id":"u1"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("ReturnsMatchesAndRecordsHistory", func(t *testing.T) {
		app := newTestApp()

		resp := doJSON(t, app, http.MethodPost, "/api/v1/search", `{"user_id":"u1","query":"matrix"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		search := decode[models.SearchResponse](t, resp)
		require.Len(t, search.Results, 1)
		assert.Equal(t, "The Matrix", search.Results[0].Title)

		resp = doJSON(t, app, http.MethodGet, "/api/v1/users/u1/history", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		history := decode[models.HistoryResponse](t, resp)
		assert.Equal(t, []string{"matrix"}, history.History)
	})

	t.Run("NoMatchReturnsEmptyResults", func(t *testing.T) {
		app := newTestApp()

		resp := doJSON(t, app, http.MethodPost, "/api/v1/search", `{"user_id":"u1","query":"nope"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		search := decode[models.SearchResponse](t, resp)
		require.NotNil(t, search.Results)
		assert.Empty(t, search.Results)
	})
}

func TestFavoritesEndpoints(t *testing.T) {
	t.Run("AddAndList", func(t *testing.T) {
		app := newTestApp()

		resp := doJSON(t, app, http.MethodPost, "/api/v1/users/u1/favorites", `{"title":"The Matrix"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		// Duplicate add keeps set semantics.
		resp = doJSON(t, app, http.MethodPost, "/api/v1/users/u1/favorites", `{"title":"The Matrix"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, "/api/v1/users/u1/favorites", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		favorites := decode[models.FavoritesResponse](t, resp)
		assert.Equal(t, []string{"The Matrix"}, favorites.Favorites)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		app := newTestApp()
		resp := doJSON(t, app, http.MethodPost, "/api/v1/users/u1/favorites", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownUserListsEmpty", func(t *testing.T) {
		app := newTestApp()
		resp := doJSON(t, app, http.MethodGet, "/api/v1/users/stranger/favorites", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		favorites := decode[models.FavoritesResponse](t, resp)
		require.NotNil(t, favorites.Favorites)
		assert.Empty(t, favorites.Favorites)
	})
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("CreatesUser", func(t *testing.T) {
		app := newTestApp()
		resp := doJSON(t, app, http.MethodPost, "/api/v1/users", `{"user_id":"u1"}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("RepeatedRegistrationSucceeds", func(t *testing.T) {
		app := newTestApp()

		resp := doJSON(t, app, http.MethodPost, "/api/v1/users", `{"user_id":"u1"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, http.MethodPost, "/api/v1/users", `{"user_id":"u1"}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("MissingUserID", func(t *testing.T) {
		app := newTestApp()
		resp := doJSON(t, app, http.MethodPost, "/api/v1/users", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
