// Package client is the gateway side of the book service. Every failure
// is an *rpc.Error.
package client

import (
	"context"

	"catalog-gateway/internal/domains/book/model"
	"catalog-gateway/internal/rpc"
)

type Client struct {
	rpc *rpc.Client
}

func New(c *rpc.Client) *Client {
	return &Client{rpc: c}
}

func (c *Client) GetBook(ctx context.Context, id string) (*model.Book, error) {
	var resp model.GetBookResponse
	if err := c.rpc.Call(ctx, rpc.MethodGet, &model.GetBookRequest{BookID: id}, &resp); err != nil {
		return nil, err
	}
	if resp.Book == nil {
		return nil, rpc.Errorf(rpc.CodeInternal, "empty reply from book service")
	}
	return resp.Book, nil
}

func (c *Client) SearchBooks(ctx context.Context, query string) ([]model.Book, error) {
	var resp model.SearchBooksResponse
	if err := c.rpc.Call(ctx, rpc.MethodSearch, &model.SearchBooksRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	if resp.Books == nil {
		resp.Books = []model.Book{}
	}
	return resp.Books, nil
}

func (c *Client) AddBook(ctx context.Context, input model.BookInput) (*model.Book, error) {
	var resp model.AddBookResponse
	if err := c.rpc.Call(ctx, rpc.MethodAdd, &model.AddBookRequest{Book: input}, &resp); err != nil {
		return nil, err
	}
	if resp.Book == nil {
		return nil, rpc.Errorf(rpc.CodeInternal, "empty reply from book service")
	}
	return resp.Book, nil
}

// Ready reports whether the underlying connection is up
func (c *Client) Ready() bool {
	return c.rpc.Ready()
}

func (c *Client) Close() {
	c.rpc.Close()
}
