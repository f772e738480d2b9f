package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"resultsd/internal/controllers"
	"resultsd/internal/providers"
	"resultsd/internal/repositories/interfaces"
	schedulerInterfaces "resultsd/internal/scheduler/interfaces"
	"resultsd/internal/services"
	"resultsd/internal/structures"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	apiPrefix       = "/api"
	shutdownTimeout = 5 * time.Second
)

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// Stores groups the repositories whose indexes are created at startup.
type Stores struct {
	Results    interfaces.ResultStoreInterface
	Flat       interfaces.FlatResultStoreInterface
	Categories interfaces.CategoryStoreInterface
	Users      interfaces.UserStoreInterface
}

func NewStores(results interfaces.ResultStoreInterface, flat interfaces.FlatResultStoreInterface, categories interfaces.CategoryStoreInterface, users interfaces.UserStoreInterface) *Stores {
	return &Stores{Results: results, Flat: flat, Categories: categories, Users: users}
}

type App struct {
	WebServer *http.Server
	scheduler schedulerInterfaces.SchedulerInterface
	stores    *Stores
	conf      *structures.Config
	logger    providers.Logger
}

// NewHandler assembles the HTTP surface: /health and /metrics at the root,
// everything else under /api behind metrics and the version gate.
func NewHandler(router providers.RouterProviderInterface, healthController *controllers.HealthController, appConfig services.AppConfigServiceInterface, conf *structures.Config, metrics providers.MetricsProviderInterface) http.Handler {
	api := router.Handler(providers.VersionGateMiddleware(appConfig, apiPrefix+"/app-config"))

	root := chi.NewRouter()
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", providers.AppVersionHeader},
		MaxAge:         300,
	}))
	root.Get("/health", healthController.Health)
	if conf.Metrics.Enabled {
		root.Handle("/metrics", promhttp.Handler())
	}
	root.Mount(apiPrefix, providers.MetricsMiddleware(metrics, api))
	return root
}

func NewApp(handler http.Handler, scheduler schedulerInterfaces.SchedulerInterface, stores *Stores, conf *structures.Config, logger providers.Logger) *App {
	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scheduler: scheduler,
		stores:    stores,
		conf:      conf,
		logger:    logger,
	}
}

func (a *App) ensureIndexes(ctx context.Context) error {
	for name, store := range map[string]indexer{
		"results":    a.stores.Results,
		"flat":       a.stores.Flat,
		"categories": a.stores.Categories,
		"users":      a.stores.Users,
	} {
		if err := store.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}
	return nil
}

// Run serves until SIGINT/SIGTERM or a server failure, then drains
// in-flight requests and stops the scheduler.
func (a *App) Run() error {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)

	ctx, cancel := context.WithTimeout(context.Background(), a.conf.Mongo.Timeout)
	err := a.ensureIndexes(ctx)
	cancel()
	if err != nil {
		return err
	}

	a.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		a.scheduler.Stop()
		return fmt.Errorf("server error: %w", err)
	}

	a.scheduler.Stop()

	ctx, cancel = context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
