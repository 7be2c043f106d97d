package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-gateway/internal/catalog"
	"catalog-gateway/internal/catalog/catalogtest"
	"catalog-gateway/internal/config"
	authorHandler "catalog-gateway/internal/domains/author/handler"
	bookHandler "catalog-gateway/internal/domains/book/handler"
	"catalog-gateway/internal/graphql"
	"catalog-gateway/pkg/container"
)

// newTestContainer wires fakes in place of the RPC clients, so
// book_service and author_service always report down
func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	gin.SetMode(gin.TestMode)

	publisher := &catalogtest.Publisher{}
	cat := catalog.New(&catalogtest.Books{}, &catalogtest.Authors{}, publisher)

	schema, err := graphql.LoadSchema()
	require.NoError(t, err)

	return &container.Container{
		Config:         &config.Config{App: config.AppConfig{Name: "Catalog Gateway", Version: "test"}},
		Publisher:      publisher,
		Catalog:        cat,
		BookHandler:    bookHandler.NewBookHandler(cat),
		AuthorHandler:  authorHandler.NewAuthorHandler(cat),
		GraphQLHandler: graphql.NewHandler(graphql.NewExecutor(schema, graphql.NewResolver(cat))),
	}
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesAreMounted(t *testing.T) {
	r := SetupRouter(newTestContainer(t))

	w := serve(r, http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/api/authors?query=x", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = serve(r, http.MethodPost, "/graphql", `{"query":"{ books { title } }"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"books":[{"title":"Dune"}]}}`, w.Body.String())

	w = serve(r, http.MethodGet, "/playground", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthReportsEachDependency(t *testing.T) {
	r := SetupRouter(newTestContainer(t))

	w := serve(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status string          `json:"status"`
		Checks map[string]bool `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "DOWN", body.Status)
	assert.Equal(t, map[string]bool{"book_service": false, "author_service": false, "publisher": true}, body.Checks)
}

func TestMetricsEndpoint(t *testing.T) {
	r := SetupRouter(newTestContainer(t))

	serve(r, http.MethodGet, "/api/books", "")
	w := serve(r, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
