// Package client is the gateway side of the author service
package client

import (
	"context"

	"catalog-gateway/internal/domains/author/model"
	"catalog-gateway/internal/rpc"
)

type Client struct {
	rpc *rpc.Client
}

func New(c *rpc.Client) *Client {
	return &Client{rpc: c}
}

func (c *Client) GetAuthor(ctx context.Context, id string) (*model.Author, error) {
	var resp model.GetAuthorResponse
	if err := c.rpc.Call(ctx, rpc.MethodGet, &model.GetAuthorRequest{AuthorID: id}, &resp); err != nil {
		return nil, err
	}
	if resp.Author == nil {
		return nil, rpc.Errorf(rpc.CodeInternal, "empty reply from author service")
	}
	return resp.Author, nil
}

func (c *Client) SearchAuthors(ctx context.Context, query string) ([]model.Author, error) {
	var resp model.SearchAuthorsResponse
	if err := c.rpc.Call(ctx, rpc.MethodSearch, &model.SearchAuthorsRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	if resp.Authors == nil {
		resp.Authors = []model.Author{}
	}
	return resp.Authors, nil
}

func (c *Client) AddAuthor(ctx context.Context, input model.AuthorInput) (*model.Author, error) {
	var resp model.AddAuthorResponse
	if err := c.rpc.Call(ctx, rpc.MethodAdd, &model.AddAuthorRequest{Author: input}, &resp); err != nil {
		return nil, err
	}
	if resp.Author == nil {
		return nil, rpc.Errorf(rpc.CodeInternal, "empty reply from author service")
	}
	return resp.Author, nil
}

func (c *Client) Ready() bool {
	return c.rpc.Ready()
}

func (c *Client) Close() {
	c.rpc.Close()
}
