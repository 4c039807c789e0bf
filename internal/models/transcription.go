package models

import (
	"time"

	"gorm.io/datatypes"
)

// Transcription is one persisted transcript. Rows are append-only: they
// are created once and removed only by an explicit delete.
type Transcription struct {
	ID            string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Transcription string         `gorm:"column:transcription;type:text" json:"transcription"`
	AudioURL      *string        `gorm:"column:audio_url;type:text" json:"audio_url"`
	UserID        *string        `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Metadata      datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (Transcription) TableName() string { return "transcriptions" }
