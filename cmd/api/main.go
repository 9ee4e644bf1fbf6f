package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tassiius1-pixel/condominio/internal/config"
	"github.com/tassiius1-pixel/condominio/internal/db"
	internalhttp "github.com/tassiius1-pixel/condominio/internal/http"
	"github.com/tassiius1-pixel/condominio/internal/morador"
	"github.com/tassiius1-pixel/condominio/internal/realtime"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api encerrada com erro")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()

	if cfg.MigrateOnBoot {
		if err := db.Migrate(ctx, cfg.DBDSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis parse: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	handler, hub, err := internalhttp.NewRouter(cfg, pool, redisClient)
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	if err := seedAdmin(ctx, cfg, pool); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	if err := hub.Start(ctx); err != nil {
		return fmt.Errorf("realtime: %w", err)
	}
	defer hub.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("API ouvindo em :%d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("encerrando...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// seedAdmin garante um ADMIN inicial quando a base está vazia. O seed não
// emite eventos nem revoga sessões, então recebe colaboradores vazios.
func seedAdmin(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
	repo := morador.NewRepository(pool)
	seedLogger := log.With().Str("component", "seed").Logger()
	svc := morador.NewService(repo, noopPublisher{}, noopRevoker{}, cfg.TenantDomain, seedLogger)
	return svc.SeedAdmin(ctx, cfg.Admin.Name, cfg.Admin.Username, cfg.Admin.CPF, cfg.Admin.Password)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, realtime.Collection) {}

type noopRevoker struct{}

func (noopRevoker) RevokeAll(context.Context, string) error { return nil }
