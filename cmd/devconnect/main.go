package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/goliatone/go-print"

	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-devconnect/config"
	"github.com/goliatone/go-devconnect/persistence"
)

func main() {
	configPath := flag.String("config", os.Getenv("DEVCONNECT_CONFIG"), "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "devconnect: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	lgr := devconnect.NewLogger(os.Stdout, cfg.Log.Format, cfg.Log.Level)
	lgr.Debug("configuration loaded", "config", print.MaybePrettyJSON(cfg.Redacted()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := persistence.Open(ctx, cfg.PersistenceConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := persistence.Migrate(ctx, db); err != nil {
		return err
	}

	repo := devconnect.NewRepositoryManager(db)
	repo.MustValidate()

	auther := devconnect.NewAuthenticator(repo.Users(), cfg.AuthOptions()).
		WithProfileStore(repo.Profiles()).
		WithLogger(lgr.Named("auth"))

	var middleware []fiber.Handler
	if cfg.Server.AccessLog {
		middleware = append(middleware, fiberlogger.New())
	}

	app := devconnect.NewHTTPServer(auther, lgr.Named("http"), middleware...)

	errCh := make(chan error, 1)
	go func() {
		lgr.Info("http server listening", "addr", cfg.Server.Addr)
		errCh <- app.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lgr.Info("shutting down")
	return app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout)
}
