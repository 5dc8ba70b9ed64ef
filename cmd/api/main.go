package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/muzammil1763/admin/internal/config"
	"github.com/muzammil1763/admin/internal/modules/auth"
	"github.com/muzammil1763/admin/internal/modules/catalog"
	"github.com/muzammil1763/admin/internal/modules/composer"
	"github.com/muzammil1763/admin/internal/modules/media"
	"github.com/muzammil1763/admin/internal/modules/sales"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(context.Background(), nil); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	db := client.Database(cfg.MongoDB)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// ── Session guard ───────────────────────────────────────
	guard, err := auth.NewService(auth.Options{
		Username:    cfg.AdminUsername,
		Password:    cfg.AdminPassword,
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		IdleTimeout: cfg.IdleTimeout,
		CheckTick:   cfg.IdleCheckTick,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer guard.Close()
	authHandler := auth.NewHandler(guard, cfg.TokenTTL)
	authHandler.RegisterRoutes(router)

	// ── Image service client ────────────────────────────────
	images := media.NewClient(cfg.CloudBaseURL, cfg.CloudName, cfg.CloudAPIKey, cfg.CloudSecret, cfg.UploadPreset)

	// ── Catalog, sales, composer ────────────────────────────
	catalogRepo := catalog.NewMongoRepository(db.Collection(cfg.ProductsColl))
	catalogService := catalog.NewService(catalogRepo, images)

	salesRepo := sales.NewMongoRepository(db.Collection(cfg.OrdersColl))
	salesService := sales.NewService(salesRepo)

	composerService := composer.NewService(images, catalogService)

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(guard))
		authHandler.RegisterGuardedRoutes(r)
		catalog.NewHandler(catalogService).RegisterRoutes(r)
		sales.NewHandler(salesService).RegisterRoutes(r)
		composer.NewHandler(composerService).RegisterRoutes(r)
	})

	// ── Start server ────────────────────────────────────────
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		fmt.Printf("Admin API server starting on %s\n", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
