package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-gateway/internal/catalog"
	"catalog-gateway/internal/catalog/catalogtest"
	bookmodel "catalog-gateway/internal/domains/book/model"
	"catalog-gateway/internal/rpc"
)

type testServer struct {
	books     *catalogtest.Books
	authors   *catalogtest.Authors
	publisher *catalogtest.Publisher
	router    *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	schema, err := LoadSchema()
	require.NoError(t, err)

	s := &testServer{
		books:     &catalogtest.Books{},
		authors:   &catalogtest.Authors{},
		publisher: &catalogtest.Publisher{},
	}
	cat := catalog.New(s.books, s.authors, s.publisher)

	s.router = gin.New()
	NewHandler(NewExecutor(schema, NewResolver(cat))).RegisterRoutes(s.router)
	return s
}

type gqlResult struct {
	Status int
	Data   json.RawMessage
	Errors []struct {
		Message    string                 `json:"message"`
		Path       []interface{}          `json:"path"`
		Extensions map[string]interface{} `json:"extensions"`
	}
	Body string
}

func (s *testServer) post(t *testing.T, query string, variables map[string]interface{}) gqlResult {
	t.Helper()
	body, err := json.Marshal(Request{Query: query, Variables: variables})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return decode(t, w)
}

func (s *testServer) get(t *testing.T, query string) gqlResult {
	t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape(query), nil))
	return decode(t, w)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) gqlResult {
	t.Helper()
	res := gqlResult{Status: w.Code, Body: w.Body.String()}
	var raw struct {
		Data   json.RawMessage `json:"data"`
		Errors json.RawMessage `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	res.Data = raw.Data
	if len(raw.Errors) > 0 {
		require.NoError(t, json.Unmarshal(raw.Errors, &res.Errors))
	}
	return res
}

func TestAddAuthorThenSearch(t *testing.T) {
	s := newTestServer(t)

	res := s.post(t, `mutation { addAuthor(name: "Asimov") { id name } }`, nil)
	require.Equal(t, http.StatusOK, res.Status)
	require.Empty(t, res.Errors, res.Body)

	var added struct {
		AddAuthor struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"addAuthor"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &added))
	assert.NotEmpty(t, added.AddAuthor.ID)
	assert.Equal(t, "Asimov", added.AddAuthor.Name)

	res = s.post(t, `{ authors(query: "asi") { name } }`, nil)
	require.Empty(t, res.Errors, res.Body)
	assert.JSONEq(t, `{"authors":[{"name":"Asimov"}]}`, string(res.Data))

	published := s.publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, "authors_topic", published[0].Topic)
}

func TestSelectionOrderIsPreserved(t *testing.T) {
	s := newTestServer(t)
	s.post(t, `mutation { addBook(title: "Dune", author: "Frank Herbert") { id } }`, nil)

	res := s.post(t, `{ books { title author id } }`, nil)
	require.Empty(t, res.Errors)
	assert.Equal(t, `{"books":[{"title":"Dune","author":"Frank Herbert","id":"book-1"}]}`, string(res.Data))
}

func TestAddBookWithVariablesAndGet(t *testing.T) {
	s := newTestServer(t)

	res := s.post(t, `
		mutation Add($title: String!, $author: String!, $description: String) {
			addBook(title: $title, author: $author, description: $description) { id title description }
		}`, map[string]interface{}{"title": "Dune", "author": "Frank Herbert"})
	require.Empty(t, res.Errors, res.Body)
	assert.JSONEq(t, `{"addBook":{"id":"book-1","title":"Dune","description":""}}`, string(res.Data))

	res = s.post(t, `query One($id: ID!) { book(id: $id) { ...bookFields } }
		fragment bookFields on Book { id title author }`, map[string]interface{}{"id": "book-1"})
	require.Empty(t, res.Errors, res.Body)
	assert.JSONEq(t, `{"book":{"id":"book-1","title":"Dune","author":"Frank Herbert"}}`, string(res.Data))
}

func TestAliasesDirectivesAndTypename(t *testing.T) {
	s := newTestServer(t)
	s.post(t, `mutation { a: addBook(title: "Dune", author: "Frank Herbert") { id } b: addAuthor(name: "Isaac Asimov", bio: "Writer") { id } }`, nil)

	res := s.post(t, `query Q($withBio: Boolean!) {
		__typename
		dune: book(id: "book-1") { __typename t: title description @skip(if: true) }
		people: authors { name bio @include(if: $withBio) ... on Author { id } }
	}`, map[string]interface{}{"withBio": false})
	require.Empty(t, res.Errors, res.Body)
	assert.JSONEq(t, `{
		"__typename": "Query",
		"dune": {"__typename": "Book", "t": "Dune"},
		"people": [{"name": "Isaac Asimov", "id": "author-1"}]
	}`, string(res.Data))
}

func TestDefaultQueryMatchesAll(t *testing.T) {
	s := newTestServer(t)
	s.post(t, `mutation { addBook(title: "Dune", author: "Frank Herbert") { id } }`, nil)
	s.post(t, `mutation { addBook(title: "Foundation", author: "Isaac Asimov") { id } }`, nil)

	res := s.post(t, `{ books { title } }`, nil)
	require.Empty(t, res.Errors)
	assert.JSONEq(t, `{"books":[{"title":"Dune"},{"title":"Foundation"}]}`, string(res.Data))
}

func TestBookNotFound(t *testing.T) {
	s := newTestServer(t)

	res := s.post(t, `{ book(id: "missing") { id } }`, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"book":null}`, string(res.Data))
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Book not found", res.Errors[0].Message)
	assert.Equal(t, CodeNotFound, res.Errors[0].Extensions["code"])
	assert.Equal(t, []interface{}{"book"}, res.Errors[0].Path)
}

func TestBackendFailureDoesNotLeak(t *testing.T) {
	s := newTestServer(t)
	s.books.Err = rpc.Errorf(rpc.CodeUnavailable, "no responders for book")

	res := s.post(t, `{ books { id } authors { id } }`, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"books":null,"authors":[]}`, string(res.Data))
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Error searching books", res.Errors[0].Message)
	assert.Equal(t, CodeInternal, res.Errors[0].Extensions["code"])
	assert.NotContains(t, res.Body, "responders")
}

func TestMutationValidation(t *testing.T) {
	s := newTestServer(t)

	res := s.post(t, `mutation { addBook(title: "  ", author: "Frank Herbert") { id } }`, nil)
	assert.JSONEq(t, `null`, string(res.Data))
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Title and author are required", res.Errors[0].Message)
	assert.Equal(t, CodeBadUserInput, res.Errors[0].Extensions["code"])
	assert.Zero(t, s.books.CallCount())

	res = s.post(t, `mutation { addAuthor(name: "") { id } }`, nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Name is required", res.Errors[0].Message)
	assert.Zero(t, s.authors.CallCount())
}

func TestMutationPublishFailure(t *testing.T) {
	s := newTestServer(t)
	s.publisher.Err = errors.New("bus down")

	res := s.post(t, `mutation { addBook(title: "Dune", author: "Frank Herbert") { id } }`, nil)
	assert.JSONEq(t, `null`, string(res.Data))
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Error adding book", res.Errors[0].Message)
	assert.Equal(t, CodeInternal, res.Errors[0].Extensions["code"])

	// the record persisted anyway
	s.publisher.Err = nil
	res = s.post(t, `{ book(id: "book-1") { title } }`, nil)
	assert.JSONEq(t, `{"book":{"title":"Dune"}}`, string(res.Data))
}

func TestMissingRequiredArgumentIsRejected(t *testing.T) {
	s := newTestServer(t)

	res := s.post(t, `mutation { addBook(title: "Dune") { id } }`, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Nil(t, res.Data)
	require.NotEmpty(t, res.Errors)
	assert.Zero(t, s.books.CallCount())
}

func TestSyntaxErrorIsRejected(t *testing.T) {
	s := newTestServer(t)

	res := s.post(t, `{ books { `, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, CodeValidationFailed, res.Errors[0].Extensions["code"])
}

func TestIntrospectionIsRejected(t *testing.T) {
	s := newTestServer(t)

	res := s.post(t, `{ __schema { queryType { name } } }`, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "introspection is not supported", res.Errors[0].Message)
}

func TestGetRunsQueriesOnly(t *testing.T) {
	s := newTestServer(t)
	s.post(t, `mutation { addAuthor(name: "Isaac Asimov") { id } }`, nil)

	res := s.get(t, `{ author(id: "author-1") { name } }`)
	require.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"author":{"name":"Isaac Asimov"}}`, string(res.Data))

	before := s.authors.CallCount()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/graphql?query="+url.QueryEscape(`mutation { addAuthor(name: "Frank Herbert") { id } }`), nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))

	res = decode(t, w)
	assert.Nil(t, res.Data)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, CodeMethodNotAllowed, res.Errors[0].Extensions["code"])
	assert.Equal(t, before, s.authors.CallCount())
}

// panickingCatalog blows up on every search
type panickingCatalog struct {
	Catalog
}

func (panickingCatalog) SearchBooks(context.Context, string) ([]bookmodel.Book, error) {
	panic("index out of range")
}

func TestResolverPanicIsReportedGenerically(t *testing.T) {
	gin.SetMode(gin.TestMode)
	schema, err := LoadSchema()
	require.NoError(t, err)

	router := gin.New()
	NewHandler(NewExecutor(schema, NewResolver(panickingCatalog{}))).RegisterRoutes(router)
	s := &testServer{router: router}

	res := s.post(t, `{ books { id } }`, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"books":null}`, string(res.Data))
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Internal server error", res.Errors[0].Message)
	assert.Equal(t, CodeInternal, res.Errors[0].Extensions["code"])
	assert.NotContains(t, res.Body, "index out of range")
}

func TestIntrospectionThroughFragmentIsRejected(t *testing.T) {
	s := newTestServer(t)

	res := s.post(t, `{ ...schema } fragment schema on Query { __type(name: "Book") { name } }`, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, CodeValidationFailed, res.Errors[0].Extensions["code"])
}

func TestMultipleOperationsNeedName(t *testing.T) {
	s := newTestServer(t)

	res := s.post(t, `query A { books { id } } query B { authors { id } }`, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	require.Len(t, res.Errors, 1)
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":`))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlayground(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/playground", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/graphql")
}
