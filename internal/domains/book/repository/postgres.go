package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-gateway/internal/domains/book/model"
)

// postgresRepository expects a books table:
//
//	id uuid primary key default gen_random_uuid(),
//	title text not null, author text not null,
//	description text not null default ''
type postgresRepository struct {
	pool *pgxpool.Pool
	sql  sq.StatementBuilderType
}

var bookColumns = []string{"id::text", "title", "author", "COALESCE(description, '')"}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{
		pool: pool,
		sql:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var book model.Book
	if err := row.Scan(&book.ID, &book.Title, &book.Author, &book.Description); err != nil {
		return nil, err
	}
	return &book, nil
}

// Create inserts a new book record
func (r *postgresRepository) Create(ctx context.Context, input model.BookInput) (*model.Book, error) {
	query, args, err := r.sql.Insert("books").
		Columns("title", "author", "description").
		Values(input.Title, input.Author, input.Description).
		Suffix("RETURNING id::text, title, author, description").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert: %w", err)
	}

	book, err := scanBook(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// GetByID retrieves a book by ID. Ids that are not uuids cannot exist.
func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrBookNotFound
	}

	query, args, err := r.sql.Select(bookColumns...).
		From("books").
		Where(sq.Eq{"id": bookID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	book, err := scanBook(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return book, nil
}

// Search matches the query literally, strpos avoids LIKE wildcards.
// An empty query returns every book.
func (r *postgresRepository) Search(ctx context.Context, query string) ([]model.Book, error) {
	q := r.sql.Select(bookColumns...).From("books")
	if query != "" {
		q = q.Where(sq.Or{
			sq.Expr("strpos(lower(title), lower(?)) > 0", query),
			sq.Expr("strpos(lower(author), lower(?)) > 0", query),
			sq.Expr("strpos(lower(COALESCE(description, '')), lower(?)) > 0", query),
		})
	}

	stmt, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search: %w", err)
	}

	rows, err := r.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}
