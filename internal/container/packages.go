package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do"
	"github.com/serroba/wardrobe-go/internal/auth"
	"github.com/serroba/wardrobe-go/internal/external"
	"github.com/serroba/wardrobe-go/internal/handlers"
	"github.com/serroba/wardrobe-go/internal/health"
	"github.com/serroba/wardrobe-go/internal/kv"
	"github.com/serroba/wardrobe-go/internal/messaging"
	"github.com/serroba/wardrobe-go/internal/middleware"
	"github.com/serroba/wardrobe-go/internal/notifications"
	"github.com/serroba/wardrobe-go/internal/ratelimit"
	"github.com/serroba/wardrobe-go/internal/store"
	"github.com/serroba/wardrobe-go/internal/wardrobe"
	"go.uber.org/zap"
)

const (
	idLength      = 21
	consumerGroup = "wardrobe-notifications"
)

// ErrConsumerNeedsDatabase is returned when the notification consumer is built
// without a database; in-memory users only exist inside the server process.
var ErrConsumerNeedsDatabase = errors.New("notification consumer requires a database url")

// IDGenerator produces ids for items, broadcasts and notifications.
type IDGenerator func() string

// Postgres owns the connection pool so the injector can close it.
type Postgres struct {
	*pgxpool.Pool
}

func (p *Postgres) Shutdown() error {
	p.Close()

	return nil
}

func LoggerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})

	do.Provide(i, func(_ *do.Injector) (IDGenerator, error) {
		gen, err := nanoid.Standard(idLength)
		if err != nil {
			return nil, fmt.Errorf("id generator: %w", err)
		}

		return IDGenerator(gen), nil
	})
}

// KVPackage provides the lazily connected shared store. A missing URL or
// token does not fail startup; it surfaces on first use.
func KVPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*kv.Connection, error) {
		opts := do.MustInvoke[*Options](i)

		return kv.NewConnection(kv.Config{URL: opts.KVURL, Token: opts.KVToken}), nil
	})
}

func PostgresPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*Postgres, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		if err := store.Migrate(ctx, pool); err != nil {
			pool.Close()

			return nil, fmt.Errorf("migrate postgres: %w", err)
		}

		logger.Info("postgres ready")

		return &Postgres{Pool: pool}, nil
	})
}

// RepositoryPackage selects Postgres repositories when a database URL is set
// and in-memory ones otherwise.
func RepositoryPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (wardrobe.ItemRepository, error) {
		if usesDatabase(i) {
			return store.NewItemPostgresStore(do.MustInvoke[*Postgres](i).Pool), nil
		}

		do.MustInvoke[*zap.Logger](i).Warn("no database url, items are kept in memory and lost on restart")

		return do.MustInvoke[*store.ItemMemoryStore](i), nil
	})

	do.Provide(i, func(i *do.Injector) (wardrobe.CatalogRepository, error) {
		if usesDatabase(i) {
			return store.NewCatalogPostgresStore(do.MustInvoke[*Postgres](i).Pool), nil
		}

		do.MustInvoke[*zap.Logger](i).Warn("no database url, the catalog is empty")

		return store.NewCatalogMemoryStore(), nil
	})

	do.Provide(i, func(i *do.Injector) (notifications.Store, error) {
		if usesDatabase(i) {
			return store.NewNotificationPostgresStore(do.MustInvoke[*Postgres](i).Pool), nil
		}

		return store.NewNotificationMemoryStore(do.MustInvoke[*store.ItemMemoryStore](i)), nil
	})

	do.Provide(i, func(_ *do.Injector) (*store.ItemMemoryStore, error) {
		return store.NewItemMemoryStore(), nil
	})
}

func usesDatabase(i *do.Injector) bool {
	return do.MustInvoke[*Options](i).DatabaseURL != ""
}

func CachePackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*kv.Store, error) {
		return kv.NewStore(do.MustInvoke[*kv.Connection](i), do.MustInvoke[*zap.Logger](i)), nil
	})
}

func RateLimitPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*ratelimit.Registry, error) {
		conn := do.MustInvoke[*kv.Connection](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return ratelimit.NewRegistry(store.NewRateLimitRedisStore(conn), logger), nil
	})
}

func AuthPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*auth.Sessions, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.SessionSecret == "" {
			do.MustInvoke[*zap.Logger](i).Warn("session secret not set, every request is anonymous")
		}

		return auth.NewSessions(opts.SessionSecret, opts.SessionIssuer, 24*time.Hour), nil
	})
}

func ExternalPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*http.Client, error) {
		return external.NewClient(do.MustInvoke[*zap.Logger](i)), nil
	})

	do.Provide(i, func(i *do.Injector) (*external.BackgroundRemover, error) {
		opts := do.MustInvoke[*Options](i)

		return external.NewBackgroundRemover(do.MustInvoke[*http.Client](i), opts.BackgroundRemovalURL, opts.BackgroundRemovalKey), nil
	})

	do.Provide(i, func(i *do.Injector) (*external.IdentityProvider, error) {
		opts := do.MustInvoke[*Options](i)

		return external.NewIdentityProvider(do.MustInvoke[*http.Client](i), opts.IdentityProviderURL), nil
	})
}

func PublisherGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client, err := do.MustInvoke[*kv.Connection](i).Client()
		if err != nil {
			return nil, err
		}

		publisher, err := messaging.NewRedisPublisher(client, do.MustInvoke[*zap.Logger](i))
		if err != nil {
			return nil, fmt.Errorf("create publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// ConsumerGroupPackage wires the broadcast fan-out consumer. It needs the
// Postgres repositories to see the users the server created.
func ConsumerGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		if !usesDatabase(i) {
			return nil, ErrConsumerNeedsDatabase
		}

		logger := do.MustInvoke[*zap.Logger](i)

		client, err := do.MustInvoke[*kv.Connection](i).Client()
		if err != nil {
			return nil, err
		}

		subscriber, err := messaging.NewRedisSubscriber(client, consumerGroup, logger)
		if err != nil {
			return nil, fmt.Errorf("create subscriber: %w", err)
		}

		fanout := notifications.NewFanout(
			do.MustInvoke[notifications.Store](i),
			do.MustInvoke[IDGenerator](i),
			notifications.DefaultBatchSize,
			logger,
		)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, notifications.TopicBroadcast, fanout.Handle, logger))

		return group, nil
	})
}

func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*chi.Mux, error) {
		router := chi.NewMux()
		router.Handle("/metrics", promhttp.Handler())

		return router, nil
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		conn := do.MustInvoke[*kv.Connection](i)
		kvStore := do.MustInvoke[*kv.Store](i)
		newID := do.MustInvoke[IDGenerator](i)

		api := humachi.New(router, huma.DefaultConfig("Wardrobe", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api, do.MustInvoke[*auth.Sessions](i), logger))
		api.UseMiddleware(middleware.RateLimit(api, do.MustInvoke[*ratelimit.Registry](i), logger))

		var database health.Checker
		if usesDatabase(i) {
			database = do.MustInvoke[*Postgres](i)
		}

		health.RegisterRoutes(api, health.NewHandler(conn, database, logger))

		handlers.RegisterRoutes(api, handlers.Handlers{
			Catalog: handlers.NewCatalogHandler(do.MustInvoke[wardrobe.CatalogRepository](i), kvStore, opts.CacheTTL(), logger),
			Items: handlers.NewItemHandler(
				do.MustInvoke[wardrobe.ItemRepository](i),
				kvStore,
				do.MustInvoke[*external.BackgroundRemover](i),
				opts.CacheTTL(),
				newID,
				logger,
			),
			Account:   handlers.NewAccountHandler(do.MustInvoke[*external.IdentityProvider](i), logger),
			Broadcast: handlers.NewBroadcastHandler(lazyPublish(i), opts.Admins(), newID, logger),
		})

		return api, nil
	})
}

// lazyPublish lets the server start while the shared store is not configured.
func lazyPublish(i *do.Injector) messaging.Publish[notifications.BroadcastEvent] {
	return messaging.NewLazyPublishFunc[notifications.BroadcastEvent](func() (message.Publisher, error) {
		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return nil, err
		}

		return group.Publisher(), nil
	}, notifications.TopicBroadcast)
}
