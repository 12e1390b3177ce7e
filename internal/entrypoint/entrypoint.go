// Package entrypoint assembles the application from configuration: the
// database, use cases, task queue, export scheduler and HTTP router.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/exporters"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// App holds the running components. Build it with NewApp and release it
// with Shutdown.
type App struct {
	Config    *config.Config
	DB        *database.Database
	UseCases  http_controllers.UseCases
	Router    *gin.Engine
	Tasks     *tasks.Client
	Scheduler *scheduler.ExportScheduler

	cancel context.CancelFunc
}

// OpenDatabase opens the reading log database described by cfg.
func OpenDatabase(cfg config.Database) (*database.Database, error) {
	return database.NewDatabase(cfg.Path, database.Options{
		Seed:     cfg.Seed,
		LogLevel: cfg.GormLogLevel(),
		Workers:  cfg.Workers,
	})
}

// NewApp wires every component and starts the background workers.
func NewApp(cfg *config.Config, version string) (*App, error) {
	db, err := OpenDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config:   cfg,
		DB:       db,
		UseCases: http_controllers.NewUseCases(db),
		cancel:   cancel,
	}

	var queue http_controllers.ExportQueue
	if cfg.Tasks.Enabled {
		app.Tasks, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			app.Shutdown(context.Background())
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.Tasks.Register(tasks.NewExportQueue(app.UseCases.GetFilteredBooks, cfg.Export.Dir))
		app.Tasks.Start(ctx)
		queue = app.Tasks
	}

	app.Scheduler = scheduler.NewExportScheduler(cfg.ExportSync, app.exportJob())
	if err := app.Scheduler.Start(ctx); err != nil {
		app.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to start export scheduler: %w", err)
	}

	app.Router = http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:    db,
		UseCases:    app.UseCases,
		ExportQueue: queue,
		ExportDir:   cfg.Export.Dir,
		Version:     version,
	})

	return app, nil
}

// exportJob enqueues the scheduled export when the task queue runs, so
// retries and history are shared with exports started over HTTP.
func (a *App) exportJob() scheduler.Job {
	if a.Tasks != nil {
		return func(context.Context) error {
			_, err := a.Tasks.Enqueue(tasks.ExportTask{})
			return err
		}
	}
	return func(ctx context.Context) error {
		result, err := exporters.ExportLibrary(ctx, a.UseCases.GetFilteredBooks, a.Config.Export.Dir)
		if err != nil {
			return err
		}
		log.Printf("[SCHEDULER] Exported %d books, %d quotes", result.BooksProcessed, result.QuotesProcessed)
		return nil
	}
}

// Shutdown stops the scheduler and the task workers, then closes the
// databases. Workers get until ctx expires to finish.
func (a *App) Shutdown(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Tasks != nil {
		a.Tasks.Stop(ctx)
	}
	a.cancel()

	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if err := a.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts down
// gracefully.
func Serve(app *App) error {
	cfg := app.Config
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: app.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	// kill (no param) default sends syscall.SIGTERM, kill -2 is syscall.SIGINT
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		app.Shutdown(context.Background())
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// SSE clients hold their connections open; Shutdown gives up on them
	// when ctx expires.
	err := srv.Shutdown(ctx)
	app.Shutdown(ctx)
	if err != nil && err != context.DeadlineExceeded {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server exiting")
	return nil
}

// Run builds the application from cfg and serves it.
func Run(cfg *config.Config, version string) error {
	log.Printf("Starting Bookshelf v%s", version)

	app, err := NewApp(cfg, version)
	if err != nil {
		return err
	}
	return Serve(app)
}
