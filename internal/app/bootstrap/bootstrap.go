package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	contentservice "quill/contexts/community-content/content-service"
	contentmemory "quill/contexts/community-content/content-service/adapters/memory"
	mongoadapter "quill/contexts/community-content/content-service/adapters/mongo"
	postgresadapter "quill/contexts/community-content/content-service/adapters/postgres"
	"quill/contexts/community-content/content-service/application/commands"
	"quill/contexts/community-content/content-service/domain/entities"
	"quill/contexts/community-content/content-service/ports"
	credential "quill/contexts/identity-access/credential-service"
	bcryptadapter "quill/contexts/identity-access/credential-service/adapters/bcrypt"
	jwtadapter "quill/contexts/identity-access/credential-service/adapters/jwt"
	"quill/internal/platform/config"
	"quill/internal/platform/db"
	"quill/internal/platform/httpserver"
	"quill/internal/platform/metrics"
	"quill/internal/platform/objectstore"
	"quill/internal/platform/staging"
	"quill/internal/platform/validation"

	"go.uber.org/multierr"
	"golang.org/x/time/rate"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const shutdownTimeout = 10 * time.Second

// ensureMongoIndexes is swapped in tests that cannot reach a server.
var ensureMongoIndexes = mongoadapter.EnsureIndexes

type APIApp struct {
	server *httpserver.Server
	stores *stores
	logger *slog.Logger
}

// stores bundles the repositories selected by the store driver.
type stores struct {
	accounts    ports.AccountRepository
	posts       ports.PostRepository
	comments    ports.CommentRepository
	categories  ports.CategoryRepository
	clock       ports.Clock
	idGenerator ports.IDGenerator
	postgres    *db.Postgres
	mongo       *db.Mongo
}

// NewLogger builds the process logger from the log format and level settings.
func NewLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", cfg.ServiceName)
}

func BuildAPI(ctx context.Context, cfg config.Config, logger *slog.Logger) (*APIApp, error) {
	logger = logger.With("process", "api")

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := st.prepare(ctx); err != nil {
		_ = st.close(ctx)
		return nil, err
	}

	images, err := buildImageStore(ctx, cfg, logger)
	if err != nil {
		_ = st.close(ctx)
		return nil, err
	}

	credentialModule, err := buildCredentialModule(cfg, logger)
	if err != nil {
		_ = st.close(ctx)
		return nil, err
	}

	stager := staging.Stager{Dir: cfg.UploadDir, MaxBytes: cfg.UploadMaxBytes}
	registry := metrics.New()
	content := contentservice.NewModule(contentservice.Dependencies{
		Accounts:            st.accounts,
		Posts:               st.posts,
		Comments:            st.comments,
		Categories:          st.categories,
		Images:              images,
		Files:               stager,
		Passwords:           credentialModule.Credentials,
		Tokens:              credentialModule.Credentials,
		Validator:           validation.New(),
		Clock:               st.clock,
		IDGenerator:         st.idGenerator,
		Observer:            registry,
		PageSize:            cfg.PostsPageSize,
		DefaultProfilePhoto: cfg.DefaultProfilePhotoURL,
		Logger:              logger,
	})

	server := httpserver.New(content, credentialModule, httpserver.Options{
		Addr:           normalizeAddr(cfg.HTTPPort),
		Stager:         stager,
		Metrics:        registry,
		AuthRateLimit:  rate.Limit(cfg.AuthRateLimitRPS),
		AuthBurst:      cfg.AuthRateLimitBurst,
		TrustedProxies: cfg.TrustedProxies,
	}, logger)

	logger.Info("api app built",
		"event", "bootstrap_api_built",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"store_driver", cfg.StoreDriver,
		"image_store_driver", cfg.ImageStoreDriver,
	)
	return &APIApp{server: server, stores: st, logger: logger}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *APIApp) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

func (a *APIApp) Close(ctx context.Context) error {
	if a.stores == nil {
		return nil
	}
	return a.stores.close(ctx)
}

// Migrate prepares the schema (postgres) or indexes (mongo) for the
// configured store driver.
func Migrate(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close(ctx)

	switch {
	case st.postgres != nil:
		err = postgresadapter.Migrate(ctx, st.postgres.DB)
	case st.mongo != nil:
		err = st.prepare(ctx)
	default:
		logger.Info("memory store needs no migration",
			"event", "bootstrap_migrate_skipped",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s store: %w", cfg.StoreDriver, err)
	}
	logger.Info("store migrated",
		"event", "bootstrap_migrate_completed",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"store_driver", cfg.StoreDriver,
	)
	return nil
}

// Promote grants the privileged flag to the account registered with email.
func Promote(ctx context.Context, cfg config.Config, email string, logger *slog.Logger) (entities.Account, error) {
	if cfg.StoreDriver == config.DriverMemory {
		return entities.Account{}, errors.New("promote requires a persistent store driver")
	}
	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return entities.Account{}, err
	}
	defer st.close(ctx)

	return commands.PromoteAccountUseCase{
		Accounts: st.accounts,
		Clock:    st.clock,
		Logger:   logger,
	}.Execute(ctx, commands.PromoteAccountCommand{Email: email})
}

func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pg, err := db.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		repo := postgresadapter.NewRepository(pg.DB, logger)
		return &stores{
			accounts:    repo,
			posts:       repo,
			comments:    repo,
			categories:  repo,
			clock:       postgresadapter.SystemClock{},
			idGenerator: postgresadapter.UUIDGenerator{},
			postgres:    pg,
		}, nil
	case config.DriverMongo:
		mg, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		repo := mongoadapter.NewRepository(mg.Database, logger)
		return &stores{
			accounts:    repo,
			posts:       repo,
			comments:    repo,
			categories:  repo,
			clock:       postgresadapter.SystemClock{},
			idGenerator: postgresadapter.UUIDGenerator{},
			mongo:       mg,
		}, nil
	case config.DriverMemory:
		store := contentmemory.NewStore(logger)
		return &stores{
			accounts:    store,
			posts:       store,
			comments:    store,
			categories:  store,
			clock:       store,
			idGenerator: store,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// prepare creates the mongo indexes the account invariants rely on; the
// unique email index is what rejects a concurrent duplicate registration.
// Index creation is idempotent, so every start runs it.
func (s *stores) prepare(ctx context.Context) error {
	if s.mongo == nil {
		return nil
	}
	if err := ensureMongoIndexes(ctx, s.mongo.Database); err != nil {
		return fmt.Errorf("ensure mongo indexes: %w", err)
	}
	return nil
}

func (s *stores) close(ctx context.Context) error {
	var err error
	if s.postgres != nil {
		err = multierr.Append(err, s.postgres.Close())
	}
	if s.mongo != nil {
		err = multierr.Append(err, s.mongo.Close(ctx))
	}
	return err
}

func buildImageStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.ImageStore, error) {
	switch cfg.ImageStoreDriver {
	case config.DriverS3:
		opts := objectstore.Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			KeyPrefix:       cfg.S3KeyPrefix,
			PathStyle:       cfg.S3PathStyle,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
		}
		client, err := objectstore.NewS3Client(ctx, opts)
		if err != nil {
			return nil, err
		}
		return objectstore.NewImageStore(client, opts, logger), nil
	case config.DriverMemory:
		return contentmemory.NewImageStore(""), nil
	default:
		return nil, fmt.Errorf("unknown image store driver %q", cfg.ImageStoreDriver)
	}
}

func buildCredentialModule(cfg config.Config, logger *slog.Logger) (credential.Module, error) {
	codec, err := jwtadapter.NewCodec(cfg.JWTSecret)
	if err != nil {
		return credential.Module{}, err
	}
	return credential.NewModule(credential.Dependencies{
		Hasher:   bcryptadapter.NewHasher(cfg.BcryptCost),
		Tokens:   codec,
		Clock:    jwtadapter.SystemClock{},
		TokenTTL: cfg.TokenTTL,
		Logger:   logger,
	}), nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
