package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fridge-recipes/internal/core/ai/cache"
	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.text, s.err
}

func (s *stubGenerator) Model() string { return "stub-model" }

func (s *stubGenerator) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func testConfig() *config.Config {
	return &config.Config{
		App:        config.AppConfig{Env: "test", Version: "test"},
		Server:     config.ServerConfig{Port: 8000, RequestTimeout: 5 * time.Second},
		Generation: config.GenerationConfig{Provider: "gemini", Model: "stub-model", Timeout: time.Second},
		Recipes: config.RecipesConfig{
			DefaultCandidates: 4,
			MaxCandidates:     8,
			SearchURLBase:     "https://cookpad.com/search/",
		},
		CORS:      config.CORSConfig{AllowOrigins: []string{"*"}},
		BodyLimit: 1 << 20,
	}
}

func newTestRouter(t *testing.T, gen *stubGenerator, store cache.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, err := SetupRouter(testConfig(), store, gen)
	require.NoError(t, err)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListCandidatesEndpoint(t *testing.T) {
	gen := &stubGenerator{text: `{"candidates":[
		{"id":"a","title":"Omelette","short":"Eggs","required":["egg","milk"]},
		{"id":"b","title":"Broken"}
	]}`}
	r := newTestRouter(t, gen, nil)

	w := postJSON(r, "/ai-recipes", `{"ingredients":["egg"," egg","milk",""],"n":2}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"candidates":[{"id":"a","title":"Omelette","short":"Eggs","required":["egg","milk"]}]}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, 1, gen.calls())
}

func TestListCandidatesEndpointGenerationFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream 500")}
	r := newTestRouter(t, gen, nil)

	w := postJSON(r, "/ai-recipes", `{"ingredients":["egg"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"candidates":[]}`, w.Body.String())
}

func TestListCandidatesEndpointDefaultN(t *testing.T) {
	gen := &stubGenerator{text: `{"candidates":[]}`}
	r := newTestRouter(t, gen, nil)

	w := postJSON(r, "/ai-recipes", `{"ingredients":["egg"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "候補を 4 件")
}

func TestListCandidatesEndpointZeroN(t *testing.T) {
	gen := &stubGenerator{text: `{"candidates":[]}`}
	r := newTestRouter(t, gen, nil)

	w := postJSON(r, "/ai-recipes", `{"ingredients":["egg"],"n":0}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"candidates":[]}`, w.Body.String())
	assert.Equal(t, 0, gen.calls())
}

func TestRecipeDetailEndpoint(t *testing.T) {
	gen := &stubGenerator{text: `{"steps":["a","b"]}`}
	r := newTestRouter(t, gen, nil)

	w := postJSON(r, "/ai-recipe-detail", `{"ingredients":["egg"],"title":"Omelette","required":["egg","milk"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"title": "Omelette",
		"required": ["egg","milk"],
		"missing": ["milk"],
		"steps": ["a","b"],
		"cookpad_search_url": "https://cookpad.com/search/Omelette"
	}`, w.Body.String())
}

func TestRecipeDetailEndpointNonJSONOutput(t *testing.T) {
	gen := &stubGenerator{text: "here is your recipe: boil it"}
	r := newTestRouter(t, gen, nil)

	w := postJSON(r, "/ai-recipe-detail", `{"ingredients":["egg"],"title":"親子丼","required":["egg","chicken"]}`)

	require.Equal(t, http.StatusOK, w.Code)

	var got common.RecipeDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{}, got.Steps)
	assert.Equal(t, []string{"chicken", "egg"}, got.Required)
	assert.Equal(t, []string{"chicken"}, got.Missing)
	assert.Equal(t, "https://cookpad.com/search/親子丼", got.CookpadSearchURL)
}

func TestRecipeDetailEndpointEmptyTitle(t *testing.T) {
	gen := &stubGenerator{text: `{"steps":["a"]}`}
	r := newTestRouter(t, gen, nil)

	w := postJSON(r, "/ai-recipe-detail", `{"ingredients":["egg"],"title":"","required":["egg"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"title": "",
		"required": ["egg"],
		"missing": [],
		"steps": ["a"],
		"cookpad_search_url": "https://cookpad.com/search/"
	}`, w.Body.String())
	assert.Equal(t, 1, gen.calls())
}

func TestEndpointsRejectInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"list malformed json", "/ai-recipes", `{"ingredients":`},
		{"list missing ingredients", "/ai-recipes", `{"n":2}`},
		{"list ingredients wrong type", "/ai-recipes", `{"ingredients":"egg"}`},
		{"detail missing title", "/ai-recipe-detail", `{"ingredients":["egg"],"required":["egg"]}`},
		{"detail null title", "/ai-recipe-detail", `{"ingredients":["egg"],"title":null,"required":["egg"]}`},
		{"detail missing required", "/ai-recipe-detail", `{"ingredients":["egg"],"title":"Omelette"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{text: `{}`}
			r := newTestRouter(t, gen, nil)

			w := postJSON(r, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), common.ErrCodeInvalidRequest)
			assert.Equal(t, 0, gen.calls())
		})
	}
}

func TestHealthEndpoints(t *testing.T) {
	store := cache.NewManager(config.CacheConfig{MaxSize: 10, TTL: time.Minute})
	defer store.Close()

	r := newTestRouter(t, &stubGenerator{}, store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "stub-model", body["model"])
	assert.Contains(t, body, "cache")

	for path, status := range map[string]string{"/ready": "ready", "/live": "alive"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), status)
	}
}

func TestSetupRouterRequiresConfig(t *testing.T) {
	_, err := SetupRouter(nil, nil, &stubGenerator{})
	assert.Error(t, err)
}
