package config

import (
	"errors"
	"os"
)

type AppConfig struct {
	Port      string
	UploadDir string

	STTProvider    string // "deepgram" (default) or "google"
	STTLanguage    string
	DeepgramAPIKey string

	RedisAddr string
	GCSBucket string
}

var App AppConfig

// InitApp reads process configuration from the environment. Required
// credentials are checked here so the process fails at startup rather
// than on the first request.
func InitApp() error {
	App = AppConfig{
		Port:           getenv("PORT", "5000"),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		STTProvider:    getenv("STT_PROVIDER", "deepgram"),
		STTLanguage:    getenv("STT_LANGUAGE", "en-US"),
		DeepgramAPIKey: os.Getenv("DEEPGRAM_API_KEY"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
	}

	if os.Getenv("POSTGRES_URI") == "" {
		return errors.New("POSTGRES_URI environment variable is not set")
	}
	if App.STTProvider == "deepgram" && App.DeepgramAPIKey == "" {
		return errors.New("DEEPGRAM_API_KEY environment variable is not set")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
