package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"crmcore/internal/database"
	"crmcore/internal/middleware"
	"crmcore/internal/modules/activity"
	"crmcore/internal/modules/auth"
	"crmcore/internal/modules/conversion"
	"crmcore/internal/modules/lead"
	"crmcore/internal/modules/metadata"
	"crmcore/internal/modules/section"
	jwtsvc "crmcore/internal/pkg/jwt"
	"crmcore/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	store := repository.NewStore(db)
	j := jwtsvc.New(secret, 24*time.Hour)

	hub := activity.NewHub()
	activityLogger := activity.NewLogger(store.Activity, hub)
	defer activityLogger.Close()
	activityHandler := activity.NewHandler(activityLogger, hub)

	authService := auth.NewService(store.Users, j)
	authHandler := auth.NewHandler(authService)

	leadService := lead.NewService(store.Leads, store.Tasks, activityLogger)
	leadHandler := lead.NewHandler(leadService)

	conversionTx := func(ctx context.Context, fn func(conversion.Store) error) error {
		return store.InTx(ctx, func(tx *repository.Store) error { return fn(tx) })
	}
	conversionService := conversion.NewService(conversionTx, activityLogger)
	conversionHandler := conversion.NewHandler(conversionService)

	metadataService := metadata.NewService(store.Modules, activityLogger)
	metadataHandler := metadata.NewHandler(metadataService)

	sectionTx := func(ctx context.Context, fn func(section.Store) error) error {
		return store.InTx(ctx, func(tx *repository.Store) error { return fn(tx) })
	}
	sectionService := section.NewService(sectionTx)
	sectionHandler := section.NewHandler(sectionService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			leadHandler.RegisterRoutes(protected)
			conversionHandler.RegisterRoutes(protected)
			metadataHandler.RegisterRoutes(protected)
			sectionHandler.RegisterRoutes(protected)
			activityHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
