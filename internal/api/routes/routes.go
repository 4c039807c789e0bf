package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/murmurapp/backend/internal/api/handlers"
)

type Deps struct {
	Transcriptions *handlers.TranscriptionHandler
	Recordings     *handlers.RecordingHandler
	UploadDir      string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/upload", d.Transcriptions.Upload)
	r.GET("/transcriptions", d.Transcriptions.List)
	r.DELETE("/transcriptions/:id", d.Transcriptions.Delete)

	r.POST("/upload-chunk", d.Recordings.UploadChunk)
	r.POST("/stop-recording", d.Recordings.Stop)

	// converted artifacts are served straight from the uploads dir
	r.Static("/uploads", d.UploadDir)
}
