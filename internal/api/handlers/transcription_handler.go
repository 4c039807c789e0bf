package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/murmurapp/backend/internal/services"
	"github.com/murmurapp/backend/internal/utils"
)

// maxUploadSize caps a single uploaded recording.
const maxUploadSize = 50 << 20

type TranscriptionHandler struct {
	svc     services.TranscriptionService
	tempDir string
}

func NewTranscriptionHandler(svc services.TranscriptionService, tempDir string) *TranscriptionHandler {
	return &TranscriptionHandler{svc: svc, tempDir: tempDir}
}

// Upload handles the single-shot path: one whole audio file in, one
// transcript out. The uploaded file is always removed after handling,
// success or not.
func (h *TranscriptionHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("audio")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TranscriptionHandler.Upload", "No audio file uploaded", err))
		return
	}
	if fh.Size > maxUploadSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TranscriptionHandler.Upload", "Audio file too large", nil))
		return
	}

	tmp := filepath.Join(h.tempDir, "upload_"+uuid.NewString())
	if err := c.SaveUploadedFile(fh, tmp); err != nil {
		writeError(c, utils.E(utils.CodeIO, "TranscriptionHandler.Upload", "Failed to store upload", err))
		return
	}
	defer os.Remove(tmp)

	audio, err := os.Open(tmp)
	if err != nil {
		writeError(c, utils.E(utils.CodeIO, "TranscriptionHandler.Upload", "Failed to read upload", err))
		return
	}
	defer audio.Close()

	row, err := h.svc.TranscribeAndSave(c.Request.Context(), audio, userID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transcription": row.Transcription})
}

func (h *TranscriptionHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *TranscriptionHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transcription deleted successfully"})
}
