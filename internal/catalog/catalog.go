// Package catalog coordinates the gateway operations shared by the REST and
// GraphQL translators: one backend call per operation and, for writes, a
// publish once the backend has confirmed the record.
package catalog

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	authormodel "catalog-gateway/internal/domains/author/model"
	bookmodel "catalog-gateway/internal/domains/book/model"
	"catalog-gateway/internal/events"
	"catalog-gateway/internal/rpc"
	"catalog-gateway/internal/shared/apperror"
)

const component = "Catalog"

// BookBackend is satisfied by the book service client
type BookBackend interface {
	GetBook(ctx context.Context, id string) (*bookmodel.Book, error)
	SearchBooks(ctx context.Context, query string) ([]bookmodel.Book, error)
	AddBook(ctx context.Context, input bookmodel.BookInput) (*bookmodel.Book, error)
}

// AuthorBackend is satisfied by the author service client
type AuthorBackend interface {
	GetAuthor(ctx context.Context, id string) (*authormodel.Author, error)
	SearchAuthors(ctx context.Context, query string) ([]authormodel.Author, error)
	AddAuthor(ctx context.Context, input authormodel.AuthorInput) (*authormodel.Author, error)
}

// Catalog holds no state of its own and is safe for concurrent use
type Catalog struct {
	books     BookBackend
	authors   AuthorBackend
	publisher events.Publisher
}

func New(books BookBackend, authors AuthorBackend, publisher events.Publisher) *Catalog {
	return &Catalog{books: books, authors: authors, publisher: publisher}
}

// ============================================================================
// BOOKS
// ============================================================================

func (c *Catalog) GetBook(ctx context.Context, id string) (*bookmodel.Book, error) {
	book, err := c.books.GetBook(ctx, id)
	if err != nil {
		return nil, classify(err, "GetBook")
	}
	return book, nil
}

func (c *Catalog) SearchBooks(ctx context.Context, query string) ([]bookmodel.Book, error) {
	books, err := c.books.SearchBooks(ctx, query)
	if err != nil {
		return nil, classify(err, "SearchBooks")
	}
	return books, nil
}

// AddBook rejects a missing title or author without calling the backend.
// When the publish fails the stored book is returned together with a
// publish failure error.
func (c *Catalog) AddBook(ctx context.Context, input bookmodel.BookInput) (*bookmodel.Book, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, apperror.WrapInvalid(err, component, "AddBook", bookmodel.MsgAddBookInvalid)
	}

	book, err := c.books.AddBook(ctx, input)
	if err != nil {
		return nil, classify(err, "AddBook")
	}

	if err := c.publisher.Publish(ctx, events.TopicBooks, book); err != nil {
		log.Error().Err(err).Str("book_id", book.ID).Str("topic", events.TopicBooks).Msg("Book stored but event not published")
		return book, apperror.WrapPublish(err, component, "AddBook", "publish book event")
	}
	return book, nil
}

// ============================================================================
// AUTHORS
// ============================================================================

func (c *Catalog) GetAuthor(ctx context.Context, id string) (*authormodel.Author, error) {
	author, err := c.authors.GetAuthor(ctx, id)
	if err != nil {
		return nil, classify(err, "GetAuthor")
	}
	return author, nil
}

func (c *Catalog) SearchAuthors(ctx context.Context, query string) ([]authormodel.Author, error) {
	authors, err := c.authors.SearchAuthors(ctx, query)
	if err != nil {
		return nil, classify(err, "SearchAuthors")
	}
	return authors, nil
}

func (c *Catalog) AddAuthor(ctx context.Context, input authormodel.AuthorInput) (*authormodel.Author, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, apperror.WrapInvalid(err, component, "AddAuthor", authormodel.MsgAddAuthorInvalid)
	}

	author, err := c.authors.AddAuthor(ctx, input)
	if err != nil {
		return nil, classify(err, "AddAuthor")
	}

	if err := c.publisher.Publish(ctx, events.TopicAuthors, author); err != nil {
		log.Error().Err(err).Str("author_id", author.ID).Str("topic", events.TopicAuthors).Msg("Author stored but event not published")
		return author, apperror.WrapPublish(err, component, "AddAuthor", "publish author event")
	}
	return author, nil
}

// classify maps an rpc status onto the gateway error taxonomy
func classify(err error, operation string) error {
	message := err.Error()
	var rpcErr *rpc.Error
	if errors.As(err, &rpcErr) {
		message = rpcErr.Message
	}

	switch rpc.CodeOf(err) {
	case rpc.CodeNotFound:
		return apperror.WrapNotFound(err, component, operation, message)
	case rpc.CodeInvalidArgument:
		return apperror.WrapInvalid(err, component, operation, message)
	case rpc.CodeUnavailable, rpc.CodeDeadlineExceeded:
		log.Warn().Err(err).Str("operation", operation).Msg("Backend unavailable")
		return apperror.WrapUnavailable(err, component, operation, message)
	default:
		log.Error().Err(err).Str("operation", operation).Msg("Backend call failed")
		return apperror.WrapInternal(err, component, operation, message)
	}
}
