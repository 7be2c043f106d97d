package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vektah/gqlparser/v2/ast"

	"catalog-gateway/internal/catalog"
	"catalog-gateway/internal/config"
	authorClient "catalog-gateway/internal/domains/author/client"
	authorHandler "catalog-gateway/internal/domains/author/handler"
	authormodel "catalog-gateway/internal/domains/author/model"
	bookClient "catalog-gateway/internal/domains/book/client"
	bookHandler "catalog-gateway/internal/domains/book/handler"
	bookmodel "catalog-gateway/internal/domains/book/model"
	"catalog-gateway/internal/events"
	"catalog-gateway/internal/graphql"
	"catalog-gateway/internal/rpc"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the gateway process.
// Connections are opened once in NewContainer and shared by all requests.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config    *config.Config
	Publisher events.Publisher

	// ========================================
	// RPC CLIENTS
	// ========================================
	BookClient   *bookClient.Client
	AuthorClient *authorClient.Client

	// ========================================
	// CORE
	// ========================================
	Catalog *catalog.Catalog

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	BookHandler    *bookHandler.BookHandler
	AuthorHandler  *authorHandler.AuthorHandler
	GraphQLHandler *graphql.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph from a loaded config, in order:
// 1. Event publisher
// 2. RPC clients (book, author)
// 3. Catalog
// 4. REST and GraphQL handlers
//
// Any failure closes what was already opened.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}
	if err := c.build(); err != nil {
		c.Cleanup()
		return nil, err
	}

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) build() error {
	cfg := c.Config
	var err error

	// ========================================
	// STEP 1: EVENT PUBLISHER
	// ========================================
	log.Info().Str("driver", cfg.Events.Driver).Msg("📨 Connecting event publisher...")

	if c.Publisher, err = NewPublisher(context.Background(), cfg.Events); err != nil {
		return fmt.Errorf("failed to init publisher: %w", err)
	}
	log.Info().Msg("✅ Event publisher ready")

	// ========================================
	// STEP 2: RPC CLIENTS
	// ========================================
	log.Info().Msg("🔌 Connecting to domain services...")

	if err = c.initClients(); err != nil {
		return fmt.Errorf("failed to init rpc clients: %w", err)
	}
	log.Info().Msg("✅ RPC clients connected")

	// ========================================
	// STEP 3: CATALOG + HANDLERS
	// ========================================
	c.Catalog = catalog.New(c.BookClient, c.AuthorClient, c.Publisher)

	if err = c.initHandlers(); err != nil {
		return fmt.Errorf("failed to init handlers: %w", err)
	}
	log.Info().Msg("✅ Handlers initialized")
	return nil
}

// NewPublisher opens the bus connection selected by EVENTS_DRIVER
func NewPublisher(ctx context.Context, cfg config.EventsConfig) (events.Publisher, error) {
	switch cfg.Driver {
	case config.EventsDriverAsynq:
		p, err := events.NewAsynqPublisher(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.EventsDriverNATS:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		p, err := events.ConnectJetStream(ctx, cfg.NATSURL, cfg.Stream)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported events driver %q", cfg.Driver)
	}
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initClients() error {
	opts := []rpc.Option{
		rpc.WithPrefix(c.Config.RPC.SubjectPrefix),
		rpc.WithTimeout(c.Config.RPC.Timeout),
	}

	books, err := rpc.Dial(c.Config.RPC.BookURL, bookmodel.ServiceName, opts...)
	if err != nil {
		return fmt.Errorf("book service: %w", err)
	}
	c.BookClient = bookClient.New(books)

	authors, err := rpc.Dial(c.Config.RPC.AuthorURL, authormodel.ServiceName, opts...)
	if err != nil {
		return fmt.Errorf("author service: %w", err)
	}
	c.AuthorClient = authorClient.New(authors)

	return nil
}

func (c *Container) initHandlers() error {
	c.BookHandler = bookHandler.NewBookHandler(c.Catalog)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.Catalog)

	schema, err := graphql.LoadSchema()
	if err != nil {
		return err
	}
	c.GraphQLHandler = newGraphQLHandler(schema, c.Catalog)
	return nil
}

func newGraphQLHandler(schema *ast.Schema, cat *catalog.Catalog) *graphql.Handler {
	return graphql.NewHandler(graphql.NewExecutor(schema, graphql.NewResolver(cat)))
}

// ========================================
// HEALTH
// ========================================

// Health reports the connection state of every outbound dependency
func (c *Container) Health() map[string]bool {
	return map[string]bool{
		"book_service":   c.BookClient != nil && c.BookClient.Ready(),
		"author_service": c.AuthorClient != nil && c.AuthorClient.Ready(),
		"publisher":      c.Publisher != nil && c.Publisher.Ready(),
	}
}

// Cleanup closes connections in reverse order of creation. Safe on a
// partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.AuthorClient != nil {
		c.AuthorClient.Close()
	}
	if c.BookClient != nil {
		c.BookClient.Close()
	}
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close publisher")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
