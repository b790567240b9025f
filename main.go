package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pimsph/registry-backend/internal/auth"
	"github.com/pimsph/registry-backend/internal/config"
	"github.com/pimsph/registry-backend/internal/db"
	"github.com/pimsph/registry-backend/internal/logger"
	"github.com/pimsph/registry-backend/internal/middleware"
	"github.com/pimsph/registry-backend/internal/migrations"
	"github.com/pimsph/registry-backend/internal/precincts"
	"github.com/pimsph/registry-backend/internal/refdata"
	"github.com/pimsph/registry-backend/internal/tags"
	"github.com/pimsph/registry-backend/internal/uploads"
	"github.com/pimsph/registry-backend/internal/voters"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "API server is running...")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.Init(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	db.Connect(cfg.DatabaseURL)
	if cfg.AutoMigrate {
		if err := migrations.Run(db.DB); err != nil {
			log.Fatal("run migrations", zap.Error(err))
		}
	}

	voters.PublicBaseURL = cfg.PublicBaseURL
	verifier := auth.NewJWTVerifier(cfg.AuthJWTSecret)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.RequestLogger)

	r.Get("/", RootHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/uploads/*", uploads.FileServer(cfg.UploadsDir))

	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenMiddleware(verifier))
		refdata.RegisterRoutes(r)
		voters.RegisterRoutes(r)
		precincts.RegisterRoutes(r)
		tags.RegisterRoutes(r)
		uploads.RegisterRoutes(r, cfg.UploadsDir)
	})

	log.Info("server listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
