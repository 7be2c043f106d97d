package graphql

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/samber/lo"

	authormodel "catalog-gateway/internal/domains/author/model"
	bookmodel "catalog-gateway/internal/domains/book/model"
	"catalog-gateway/internal/shared/apperror"
)

// Catalog is what the resolvers need from catalog.Catalog
type Catalog interface {
	GetBook(ctx context.Context, id string) (*bookmodel.Book, error)
	SearchBooks(ctx context.Context, query string) ([]bookmodel.Book, error)
	AddBook(ctx context.Context, input bookmodel.BookInput) (*bookmodel.Book, error)
	GetAuthor(ctx context.Context, id string) (*authormodel.Author, error)
	SearchAuthors(ctx context.Context, query string) ([]authormodel.Author, error)
	AddAuthor(ctx context.Context, input authormodel.AuthorInput) (*authormodel.Author, error)
}

// Resolver maps each root field to one catalog call and every failure to a
// fixed message for that field
type Resolver struct {
	catalog Catalog
}

func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// ============================================================================
// QUERIES
// ============================================================================

type idArgs struct {
	ID graphqlgo.ID
}

type searchArgs struct {
	Query *string
}

func (r *Resolver) Book(ctx context.Context, args idArgs) (*bookResolver, error) {
	book, err := r.catalog.GetBook(ctx, string(args.ID))
	if err != nil {
		return nil, resolverError(err, bookmodel.MsgBookNotFound)
	}
	return &bookResolver{book}, nil
}

func (r *Resolver) Books(ctx context.Context, args searchArgs) (*[]*bookResolver, error) {
	books, err := r.catalog.SearchBooks(ctx, deref(args.Query))
	if err != nil {
		return nil, resolverError(err, bookmodel.MsgSearchBooksError)
	}
	out := lo.Map(books, func(b bookmodel.Book, _ int) *bookResolver { return &bookResolver{&b} })
	return &out, nil
}

func (r *Resolver) Author(ctx context.Context, args idArgs) (*authorResolver, error) {
	author, err := r.catalog.GetAuthor(ctx, string(args.ID))
	if err != nil {
		return nil, resolverError(err, authormodel.MsgAuthorNotFound)
	}
	return &authorResolver{author}, nil
}

func (r *Resolver) Authors(ctx context.Context, args searchArgs) (*[]*authorResolver, error) {
	authors, err := r.catalog.SearchAuthors(ctx, deref(args.Query))
	if err != nil {
		return nil, resolverError(err, authormodel.MsgSearchAuthorsError)
	}
	out := lo.Map(authors, func(a authormodel.Author, _ int) *authorResolver { return &authorResolver{&a} })
	return &out, nil
}

// ============================================================================
// MUTATIONS
// ============================================================================

type addBookArgs struct {
	Title       string
	Author      string
	Description *string
}

func (r *Resolver) AddBook(ctx context.Context, args addBookArgs) (*bookResolver, error) {
	book, err := r.catalog.AddBook(ctx, bookmodel.BookInput{
		Title:       args.Title,
		Author:      args.Author,
		Description: deref(args.Description),
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			return nil, &fieldError{code: CodeBadUserInput, message: bookmodel.MsgAddBookInvalid}
		}
		return nil, resolverError(err, bookmodel.MsgAddBookError)
	}
	return &bookResolver{book}, nil
}

type addAuthorArgs struct {
	Name string
	Bio  *string
}

func (r *Resolver) AddAuthor(ctx context.Context, args addAuthorArgs) (*authorResolver, error) {
	author, err := r.catalog.AddAuthor(ctx, authormodel.AuthorInput{
		Name: args.Name,
		Bio:  deref(args.Bio),
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			return nil, &fieldError{code: CodeBadUserInput, message: authormodel.MsgAddAuthorInvalid}
		}
		return nil, resolverError(err, authormodel.MsgAddAuthorError)
	}
	return &authorResolver{author}, nil
}

// resolverError keeps the caller-facing message fixed per field; only the
// extension code tells not found apart from a failure
func resolverError(err error, message string) *fieldError {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return &fieldError{code: CodeNotFound, message: message}
	case apperror.KindInvalidInput:
		return &fieldError{code: CodeBadUserInput, message: message}
	default:
		return &fieldError{code: CodeInternal, message: message}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ============================================================================
// OBJECTS
// ============================================================================

type bookResolver struct {
	book *bookmodel.Book
}

func (b *bookResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(b.book.ID)
}

func (b *bookResolver) Title() string {
	return b.book.Title
}

func (b *bookResolver) Author() string {
	return b.book.Author
}

func (b *bookResolver) Description() *string {
	return &b.book.Description
}

type authorResolver struct {
	author *authormodel.Author
}

func (a *authorResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(a.author.ID)
}

func (a *authorResolver) Name() string {
	return a.author.Name
}

func (a *authorResolver) Bio() *string {
	return &a.author.Bio
}
