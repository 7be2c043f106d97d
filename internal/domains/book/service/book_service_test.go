package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-gateway/internal/domains/book/model"
	"catalog-gateway/internal/domains/book/repository"
	"catalog-gateway/internal/rpc"
)

type failingRepository struct{}

func (failingRepository) Create(context.Context, model.BookInput) (*model.Book, error) {
	return nil, errors.New("connection reset")
}

func (failingRepository) GetByID(context.Context, string) (*model.Book, error) {
	return nil, errors.New("connection reset")
}

func (failingRepository) Search(context.Context, string) ([]model.Book, error) {
	return nil, errors.New("connection reset")
}

func requireCode(t *testing.T, err error, code rpc.Code, message string) {
	t.Helper()
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, code, rpcErr.Code)
	assert.Equal(t, message, rpcErr.Message)
}

func TestBookService_AddThenGet(t *testing.T) {
	svc := NewBookService(repository.NewMemoryRepository())
	ctx := context.Background()

	added, err := svc.Add(ctx, &model.AddBookRequest{Book: model.BookInput{
		Title: "  Dune ", Author: "Frank Herbert", Description: "Sci-fi",
	}})
	require.NoError(t, err)
	assert.Equal(t, "Dune", added.Book.Title)

	got, err := svc.Get(ctx, &model.GetBookRequest{BookID: added.Book.ID})
	require.NoError(t, err)
	assert.Equal(t, added.Book, got.Book)
}

func TestBookService_AddInvalid(t *testing.T) {
	svc := NewBookService(repository.NewMemoryRepository())

	_, err := svc.Add(context.Background(), &model.AddBookRequest{Book: model.BookInput{Title: " ", Author: "x"}})
	requireCode(t, err, rpc.CodeInvalidArgument, model.MsgAddBookInvalid)
}

func TestBookService_GetNotFound(t *testing.T) {
	svc := NewBookService(repository.NewMemoryRepository())

	_, err := svc.Get(context.Background(), &model.GetBookRequest{BookID: "nope"})
	requireCode(t, err, rpc.CodeNotFound, model.MsgBookNotFound)
}

func TestBookService_SearchEmptyStore(t *testing.T) {
	svc := NewBookService(repository.NewMemoryRepository())

	resp, err := svc.Search(context.Background(), &model.SearchBooksRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Books)
	assert.Empty(t, resp.Books)
}

func TestBookService_StoreFailuresAreInternal(t *testing.T) {
	svc := NewBookService(failingRepository{})
	ctx := context.Background()

	_, err := svc.Get(ctx, &model.GetBookRequest{BookID: "1"})
	requireCode(t, err, rpc.CodeInternal, model.MsgRetrieveBookError)

	_, err = svc.Search(ctx, &model.SearchBooksRequest{Query: "x"})
	requireCode(t, err, rpc.CodeInternal, model.MsgSearchBooksError)

	_, err = svc.Add(ctx, &model.AddBookRequest{Book: model.BookInput{Title: "t", Author: "a"}})
	requireCode(t, err, rpc.CodeInternal, model.MsgAddBookError)
}
