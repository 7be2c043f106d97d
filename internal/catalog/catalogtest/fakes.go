// Package catalogtest provides in-memory backends and a recording publisher
// for tests that exercise catalog.Catalog without NATS.
package catalogtest

import (
	"context"
	"fmt"
	"sync"

	authormodel "catalog-gateway/internal/domains/author/model"
	bookmodel "catalog-gateway/internal/domains/book/model"
	"catalog-gateway/internal/rpc"
)

// Books behaves like the book service: sequential ids, case-insensitive
// search, NOT_FOUND for unknown ids. Set Err to fail every call.
type Books struct {
	mu    sync.Mutex
	books []bookmodel.Book
	Err   error
	Calls int
}

func (b *Books) GetBook(_ context.Context, id string) (*bookmodel.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls++
	if b.Err != nil {
		return nil, b.Err
	}
	for _, book := range b.books {
		if book.ID == id {
			return &book, nil
		}
	}
	return nil, rpc.Errorf(rpc.CodeNotFound, bookmodel.MsgBookNotFound)
}

func (b *Books) SearchBooks(_ context.Context, query string) ([]bookmodel.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls++
	if b.Err != nil {
		return nil, b.Err
	}
	found := make([]bookmodel.Book, 0)
	for _, book := range b.books {
		if book.Matches(query) {
			found = append(found, book)
		}
	}
	return found, nil
}

func (b *Books) AddBook(_ context.Context, input bookmodel.BookInput) (*bookmodel.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls++
	if b.Err != nil {
		return nil, b.Err
	}
	book := bookmodel.Book{
		ID:          fmt.Sprintf("book-%d", len(b.books)+1),
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
	}
	b.books = append(b.books, book)
	return &book, nil
}

// CallCount is safe to read while requests are in flight
func (b *Books) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Calls
}

type Authors struct {
	mu      sync.Mutex
	authors []authormodel.Author
	Err     error
	Calls   int
}

func (a *Authors) GetAuthor(_ context.Context, id string) (*authormodel.Author, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Calls++
	if a.Err != nil {
		return nil, a.Err
	}
	for _, author := range a.authors {
		if author.ID == id {
			return &author, nil
		}
	}
	return nil, rpc.Errorf(rpc.CodeNotFound, authormodel.MsgAuthorNotFound)
}

func (a *Authors) SearchAuthors(_ context.Context, query string) ([]authormodel.Author, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Calls++
	if a.Err != nil {
		return nil, a.Err
	}
	found := make([]authormodel.Author, 0)
	for _, author := range a.authors {
		if author.Matches(query) {
			found = append(found, author)
		}
	}
	return found, nil
}

func (a *Authors) AddAuthor(_ context.Context, input authormodel.AuthorInput) (*authormodel.Author, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Calls++
	if a.Err != nil {
		return nil, a.Err
	}
	author := authormodel.Author{
		ID:   fmt.Sprintf("author-%d", len(a.authors)+1),
		Name: input.Name,
		Bio:  input.Bio,
	}
	a.authors = append(a.authors, author)
	return &author, nil
}

func (a *Authors) CallCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Calls
}

// Published is one recorded Publish call
type Published struct {
	Topic  string
	Record any
}

// Publisher records every publish. Set Err to make publishing fail.
type Publisher struct {
	mu     sync.Mutex
	events []Published
	Err    error
}

func (p *Publisher) Publish(_ context.Context, topic string, record any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, Published{Topic: topic, Record: record})
	return nil
}

func (p *Publisher) Events() []Published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Published(nil), p.events...)
}

func (p *Publisher) Ready() bool {
	return p.Err == nil
}

func (p *Publisher) Close() error {
	return nil
}
