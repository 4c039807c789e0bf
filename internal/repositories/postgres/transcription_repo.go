package postgres

import (
	"context"

	"github.com/murmurapp/backend/internal/models"
	"gorm.io/gorm"
)

type TranscriptionRepository interface {
	Insert(ctx context.Context, row *models.Transcription) error
	ListNewestFirst(ctx context.Context) ([]models.Transcription, error)
	// Delete removes a row by id. Deleting an id that does not exist is
	// not an error.
	Delete(ctx context.Context, id string) error
}

type transcriptionRepo struct {
	db *gorm.DB
}

func NewTranscriptionRepo(db *gorm.DB) TranscriptionRepository {
	return &transcriptionRepo{db: db}
}

func (r *transcriptionRepo) Insert(ctx context.Context, row *models.Transcription) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *transcriptionRepo) ListNewestFirst(ctx context.Context) ([]models.Transcription, error) {
	var rows []models.Transcription
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *transcriptionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Transcription{}).Error
}
