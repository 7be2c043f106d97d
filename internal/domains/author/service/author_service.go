package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"catalog-gateway/internal/domains/author/model"
	"catalog-gateway/internal/domains/author/repository"
	"catalog-gateway/internal/rpc"
)

// AuthorService answers the author RPC methods
type AuthorService struct {
	repo repository.Repository
}

func NewAuthorService(repo repository.Repository) *AuthorService {
	return &AuthorService{repo: repo}
}

func (s *AuthorService) Register(srv *rpc.Server) {
	srv.Register(rpc.MethodGet, rpc.Handle(s.Get))
	srv.Register(rpc.MethodSearch, rpc.Handle(s.Search))
	srv.Register(rpc.MethodAdd, rpc.Handle(s.Add))
}

func (s *AuthorService) Get(ctx context.Context, req *model.GetAuthorRequest) (*model.GetAuthorResponse, error) {
	author, err := s.repo.GetByID(ctx, strings.TrimSpace(req.AuthorID))
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			return nil, rpc.Errorf(rpc.CodeNotFound, model.MsgAuthorNotFound)
		}
		log.Error().Err(err).Str("author_id", req.AuthorID).Msg("Failed to get author")
		return nil, rpc.Errorf(rpc.CodeInternal, model.MsgRetrieveAuthorError)
	}
	return &model.GetAuthorResponse{Author: author}, nil
}

func (s *AuthorService) Search(ctx context.Context, req *model.SearchAuthorsRequest) (*model.SearchAuthorsResponse, error) {
	authors, err := s.repo.Search(ctx, req.Query)
	if err != nil {
		log.Error().Err(err).Str("query", req.Query).Msg("Failed to search authors")
		return nil, rpc.Errorf(rpc.CodeInternal, model.MsgSearchAuthorsError)
	}
	if authors == nil {
		authors = []model.Author{}
	}
	return &model.SearchAuthorsResponse{Authors: authors}, nil
}

func (s *AuthorService) Add(ctx context.Context, req *model.AddAuthorRequest) (*model.AddAuthorResponse, error) {
	input := req.Author
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, rpc.Errorf(rpc.CodeInvalidArgument, model.MsgAddAuthorInvalid)
	}

	author, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("name", input.Name).Msg("Failed to add author")
		return nil, rpc.Errorf(rpc.CodeInternal, model.MsgAddAuthorError)
	}

	log.Info().Str("author_id", author.ID).Str("name", author.Name).Msg("Author added")
	return &model.AddAuthorResponse{Author: author}, nil
}
