// Package server initializes and runs the vault server: it loads
// configuration, wires storage and the crypto components, and starts the
// HTTP endpoint with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hasilakhwa/secure-locker-api/internal/cryptox"
	"github.com/hasilakhwa/secure-locker-api/internal/logging"
	"github.com/hasilakhwa/secure-locker-api/internal/server/auth"
	"github.com/hasilakhwa/secure-locker-api/internal/server/config"
	"github.com/hasilakhwa/secure-locker-api/internal/server/httpapi"
	"github.com/hasilakhwa/secure-locker-api/internal/server/repositories/repomanager"
	"github.com/hasilakhwa/secure-locker-api/internal/server/services"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	userService   *services.UserService
	secretService *services.SecretService
}

// NewApp wires the application. All key material is validated here; a missing
// or malformed key makes construction fail before anything listens.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	cipher, err := cryptox.NewCipher(cfg.CipherKey)
	if err != nil {
		return nil, fmt.Errorf("cipher init error: %w", err)
	}

	var rm repomanager.RepositoryManager
	if cfg.DatabaseURL == "" {
		logger.Warn(ctx, "no DATABASE_URL configured, using in-memory storage")
		rm = repomanager.NewInMemoryRepositoryManager()
	} else {
		rm, err = repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	hasher := cryptox.NewPasswordHasher(cfg.BcryptCost, cfg.HashWorkers)
	tokens := auth.NewTokenIssuer([]byte(cfg.SecretKey), cfg.AccessTokenTTL, nil)

	us := services.NewUserService(rm.Users(), hasher, tokens)
	ss := services.NewSecretService(rm.Secrets(), cipher)

	return &App{config: cfg, logger: logger, userService: us, secretService: ss}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.ServerAddress, app.logger, app.userService, app.secretService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
