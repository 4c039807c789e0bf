package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/murmurapp/backend/config"
	"github.com/murmurapp/backend/internal/api/handlers"
	"github.com/murmurapp/backend/internal/api/middleware"
	"github.com/murmurapp/backend/internal/api/routes"
	"github.com/murmurapp/backend/internal/cache"
	"github.com/murmurapp/backend/internal/logger"
	"github.com/murmurapp/backend/internal/media"
	"github.com/murmurapp/backend/internal/models"
	"github.com/murmurapp/backend/internal/providers/stt"
	"github.com/murmurapp/backend/internal/recording"
	pgrepo "github.com/murmurapp/backend/internal/repositories/postgres"
	"github.com/murmurapp/backend/internal/services"
	"github.com/murmurapp/backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	if err := config.InitApp(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.PostgresDB.AutoMigrate(&models.Transcription{}); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	var listCache cache.Cache
	if config.App.RedisAddr != "" {
		if err := config.InitRedis(); err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		listCache = cache.NewRedisCache(config.RedisClient)
	}

	provider, err := stt.New(ctx, config.App.STTProvider, stt.Config{
		DeepgramAPIKey: config.App.DeepgramAPIKey,
	})
	if err != nil {
		log.Fatalf("stt provider init error: %v", err)
	}
	defer provider.Close()

	var uploader storage.Uploader
	if config.App.GCSBucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, config.App.GCSBucket)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer gcs.Close()
		uploader = gcs
	}

	sessions, err := recording.NewManager(config.App.UploadDir)
	if err != nil {
		log.Fatalf("uploads dir error: %v", err)
	}

	sttOpts := stt.Options{Punctuate: true, Language: config.App.STTLanguage}

	transcripts := services.NewTranscriptionService(
		pgrepo.NewTranscriptionRepo(config.PostgresDB),
		pgrepo.NewUserRepo(config.PostgresDB),
		provider,
		sttOpts,
		listCache,
		log,
	)
	recordings := services.NewRecordingService(
		sessions,
		media.NewFFmpeg(),
		transcripts,
		uploader,
		log,
	)

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(cors.Default())
	r.Use(middleware.RequestLogger(log))
	// catch-all boundary: whatever escapes a handler becomes a generic
	// 500 without leaking internals
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Transcriptions: handlers.NewTranscriptionHandler(transcripts, sessions.Dir()),
		Recordings:     handlers.NewRecordingHandler(recordings),
		UploadDir:      sessions.Dir(),
	})

	log.WithField("port", config.App.Port).Info("backend listening")
	if err := r.Run(":" + config.App.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
