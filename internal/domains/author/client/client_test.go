package client

import (
	"context"
	"testing"

	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-gateway/internal/domains/author/model"
	"catalog-gateway/internal/domains/author/repository"
	"catalog-gateway/internal/domains/author/service"
	"catalog-gateway/internal/rpc"
)

func TestClient(t *testing.T) {
	opts := test.DefaultTestOptions
	opts.Port = -1
	s := test.RunServer(&opts)
	defer s.Shutdown()

	nc, err := nats.Connect(s.ClientURL())
	require.NoError(t, err)
	defer nc.Close()

	srv := rpc.NewServer(nc, model.ServiceName)
	service.NewAuthorService(repository.NewMemoryRepository()).Register(srv)
	require.NoError(t, srv.Start())
	defer srv.Stop()

	c := New(rpc.NewClient(nc, model.ServiceName))
	ctx := context.Background()

	asimov, err := c.AddAuthor(ctx, model.AuthorInput{Name: "Isaac Asimov"})
	require.NoError(t, err)
	assert.Equal(t, "", asimov.Bio)

	got, err := c.GetAuthor(ctx, asimov.ID)
	require.NoError(t, err)
	assert.Equal(t, *asimov, *got)

	list, err := c.SearchAuthors(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = c.GetAuthor(ctx, "missing")
	assert.Equal(t, rpc.CodeNotFound, rpc.CodeOf(err))

	_, err = c.AddAuthor(ctx, model.AuthorInput{Bio: "no name"})
	assert.Equal(t, rpc.CodeInvalidArgument, rpc.CodeOf(err))
}
