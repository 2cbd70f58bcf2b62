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

	"github.com/mrlokans/shelf/internal/config"
	"github.com/mrlokans/shelf/internal/database"
	"github.com/mrlokans/shelf/internal/database/books"
	"github.com/mrlokans/shelf/internal/database/tags"
	"github.com/mrlokans/shelf/internal/database/trash"
	http_controllers "github.com/mrlokans/shelf/internal/http"
	"github.com/mrlokans/shelf/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends syscall.SIGTERM, kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background jobs before the server goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Shelf v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.GormLogLevel())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	for _, t := range db.Schema.Registry.Tables() {
		log.Printf("Soft-delete table: %s", t)
	}

	booksRepo := books.NewRepository(db.DB, db.Schema)
	trashRepo := trash.NewRepository(db.DB, db.Schema)

	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	var purgeScheduler *scheduler.PurgeScheduler
	if cfg.Purge.Enabled {
		purgeScheduler = scheduler.NewPurgeScheduler(trashRepo, cfg.Purge.Schedule)
		if err := purgeScheduler.Start(schedulerCtx); err != nil {
			log.Fatalf("Failed to start trash purge scheduler: %v", err)
		}
	} else {
		log.Printf("Trash purge scheduler: disabled")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		BookStore:      booksRepo,
		HighlightStore: booksRepo,
		TagStore:       tags.NewRepository(db.DB, db.Schema),
		TrashStore:     trashRepo,
		Database:       db,
		Version:        version,
	})

	onShutdown := func(ctx context.Context) {
		if purgeScheduler != nil {
			purgeScheduler.Stop()
		}
		schedulerCancel()
	}

	Serve(router, cfg, onShutdown)
}
