package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murmurapp/backend/internal/services"
	"github.com/murmurapp/backend/internal/utils"
)

type RecordingHandler struct {
	svc services.RecordingService
}

func NewRecordingHandler(svc services.RecordingService) *RecordingHandler {
	return &RecordingHandler{svc: svc}
}

// UploadChunk appends one fragment to the live recording. Ordering is
// the client's responsibility: chunks land in the order the requests
// are served.
func (h *RecordingHandler) UploadChunk(c *gin.Context) {
	fh, err := c.FormFile("chunk")
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "RecordingHandler.UploadChunk", "No chunk file uploaded", err))
		return
	}

	chunk, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeIO, "RecordingHandler.UploadChunk", "Failed to open chunk", err))
		return
	}
	defer chunk.Close()

	if _, err := h.svc.AppendChunk(c.Request.Context(), chunk); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chunk received and appended"})
}

// Stop finalizes the live recording: convert, transcribe, persist.
func (h *RecordingHandler) Stop(c *gin.Context) {
	res, err := h.svc.Finalize(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
