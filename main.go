package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"oasis/app/auth"
	"oasis/app/config"
	"oasis/app/repositories"
	"oasis/app/routes"
	"oasis/pkg/logger"
)

const cliVersion = "1.0.0"

// exit is swapped out in tests.
var exit = os.Exit

func main() {
	RealMain()
}

func RealMain() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: oasis <command>")
		fmt.Println("Run 'oasis help' for the list of commands.")
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("oasis version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: oasis <command> [options]
Commands:
  help      Display this help message.
  version   Show version information.
  serve     Run the forum server. Configuration comes from the environment:
            ADDR, DATABASE_URL, SESSION_SECRET (required), SESSION_BACKEND
            (cookie|badger|redis), SESSION_TTL, LOG_LEVEL.
`
	fmt.Println(helpText)
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		exit(1)
		return
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	store, err := repositories.Open(cfg.DatabaseURL, cfg.StoreTimeout)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabaseURL).Msg("failed to open store")
	}
	defer store.Close()

	sessions, cleanup, err := buildSessionManager(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Session.Backend).Msg("failed to build session manager")
	}
	defer cleanup()

	router := routes.Setup(store, sessions, log)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Str("session_backend", cfg.Session.Backend).
			Msg("starting forum server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

// buildSessionManager selects the session backend. The stateless cookie
// backend is the default; badger and redis provide a revocable server-side
// session table behind the same interface.
func buildSessionManager(ctx context.Context, cfg *config.Config) (auth.Manager, func(), error) {
	noop := func() {}
	switch cfg.Session.Backend {
	case config.BackendCookie:
		mgr, err := auth.NewCookieManager([]byte(cfg.Session.Secret), cfg.Session.TTL)
		return mgr, noop, err
	case config.BackendBadger:
		store, err := auth.OpenBadgerStore(cfg.Session.DBPath)
		if err != nil {
			return nil, noop, err
		}
		return auth.NewStoreManager(store, cfg.Session.TTL), func() { store.Close() }, nil
	case config.BackendRedis:
		store, err := auth.DialRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}
		return auth.NewStoreManager(store, cfg.Session.TTL), func() { store.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
