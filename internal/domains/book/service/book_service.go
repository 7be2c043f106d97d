package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/domains/book/model"
	"catalog-gateway/internal/domains/book/repository"
	"catalog-gateway/internal/rpc"
)

// BookService answers the book RPC methods. Store failures never leak to
// the caller, only the fixed messages in model do.
type BookService struct {
	repo repository.Repository
}

func NewBookService(repo repository.Repository) *BookService {
	return &BookService{repo: repo}
}

// Register binds Get, Search and Add on srv
func (s *BookService) Register(srv *rpc.Server) {
	srv.Register(rpc.MethodGet, rpc.Handle(s.Get))
	srv.Register(rpc.MethodSearch, rpc.Handle(s.Search))
	srv.Register(rpc.MethodAdd, rpc.Handle(s.Add))
}

// Get retrieves a book by ID
func (s *BookService) Get(ctx context.Context, req *model.GetBookRequest) (*model.GetBookResponse, error) {
	book, err := s.repo.GetByID(ctx, strings.TrimSpace(req.BookID))
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, rpc.Errorf(rpc.CodeNotFound, model.MsgBookNotFound)
		}
		log.Error().Err(err).Str("book_id", req.BookID).Msg("Failed to get book")
		return nil, rpc.Errorf(rpc.CodeInternal, model.MsgRetrieveBookError)
	}
	return &model.GetBookResponse{Book: book}, nil
}

// Search lists books matching the query, the empty query lists all
func (s *BookService) Search(ctx context.Context, req *model.SearchBooksRequest) (*model.SearchBooksResponse, error) {
	books, err := s.repo.Search(ctx, req.Query)
	if err != nil {
		log.Error().Err(err).Str("query", req.Query).Msg("Failed to search books")
		return nil, rpc.Errorf(rpc.CodeInternal, model.MsgSearchBooksError)
	}
	if books == nil {
		books = []model.Book{}
	}
	return &model.SearchBooksResponse{Books: books}, nil
}

// Add validates and persists a new book
func (s *BookService) Add(ctx context.Context, req *model.AddBookRequest) (*model.AddBookResponse, error) {
	input := req.Book
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, rpc.Errorf(rpc.CodeInvalidArgument, model.MsgAddBookInvalid)
	}

	book, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("title", input.Title).Msg("Failed to add book")
		return nil, rpc.Errorf(rpc.CodeInternal, model.MsgAddBookError)
	}

	log.Info().Str("book_id", book.ID).Str("title", book.Title).Msg("Book added")
	return &model.AddBookResponse{Book: book}, nil
}
