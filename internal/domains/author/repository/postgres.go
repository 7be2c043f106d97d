package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-gateway/internal/domains/author/model"
)

// postgresRepository reads and writes the authors table
// (id uuid, name text, bio text)
type postgresRepository struct {
	pool *pgxpool.Pool
	sql  sq.StatementBuilderType
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{
		pool: pool,
		sql:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepository) selectAuthors() sq.SelectBuilder {
	return r.sql.Select("id::text", "name", "COALESCE(bio, '')").From("authors")
}

func (r *postgresRepository) Create(ctx context.Context, input model.AuthorInput) (*model.Author, error) {
	query, args, err := r.sql.Insert("authors").
		Columns("name", "bio").
		Values(input.Name, input.Bio).
		Suffix("RETURNING id::text, name, bio").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert: %w", err)
	}

	var author model.Author
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&author.ID, &author.Name, &author.Bio); err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return &author, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Author, error) {
	authorID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrAuthorNotFound
	}

	query, args, err := r.selectAuthors().Where(sq.Eq{"id": authorID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	var author model.Author
	err = r.pool.QueryRow(ctx, query, args...).Scan(&author.ID, &author.Name, &author.Bio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return &author, nil
}

func (r *postgresRepository) Search(ctx context.Context, query string) ([]model.Author, error) {
	q := r.selectAuthors()
	if query != "" {
		q = q.Where(sq.Or{
			sq.Expr("strpos(lower(name), lower(?)) > 0", query),
			sq.Expr("strpos(lower(COALESCE(bio, '')), lower(?)) > 0", query),
		})
	}

	stmt, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search: %w", err)
	}

	rows, err := r.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}
	return authors, nil
}
