package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/murmurapp/backend/internal/cache"
	"github.com/murmurapp/backend/internal/models"
	pgrepo "github.com/murmurapp/backend/internal/repositories/postgres"
	"github.com/murmurapp/backend/internal/providers/stt"
	"github.com/murmurapp/backend/internal/utils"
)

const (
	listCacheKey = "transcriptions:list"
	listCacheTTL = 30 * time.Second
)

// TranscriptionService wraps the speech provider and the transcript
// store. User resolution is best-effort: an unknown user id never fails
// a save, it only drops the association.
type TranscriptionService interface {
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
	Save(ctx context.Context, text string, audioURL *string, userID string) (*models.Transcription, error)
	TranscribeAndSave(ctx context.Context, audio io.Reader, userID string) (*models.Transcription, error)
	List(ctx context.Context) ([]models.Transcription, error)
	Delete(ctx context.Context, id string) error
}

type transcriptionService struct {
	repo     pgrepo.TranscriptionRepository
	users    pgrepo.UserRepository
	provider stt.Provider
	opts     stt.Options
	cache    cache.Cache // optional
	log      *logrus.Logger
}

func NewTranscriptionService(
	repo pgrepo.TranscriptionRepository,
	users pgrepo.UserRepository,
	provider stt.Provider,
	opts stt.Options,
	c cache.Cache,
	log *logrus.Logger,
) TranscriptionService {
	if log == nil {
		log = logrus.New()
	}
	return &transcriptionService{
		repo:     repo,
		users:    users,
		provider: provider,
		opts:     opts,
		cache:    c,
		log:      log,
	}
}

func (s *transcriptionService) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	const op = "TranscriptionService.Transcribe"

	text, err := s.provider.Transcribe(ctx, audio, s.opts)
	if err != nil {
		var pe *stt.ProviderError
		switch {
		case errors.Is(err, stt.ErrEmptyResult):
			return "", utils.E(utils.CodeEmptyResult, op, "No transcription channels found.", err)
		case errors.As(err, &pe):
			return "", utils.E(utils.CodeProvider, op, pe.Message, err)
		default:
			return "", utils.E(utils.CodeProvider, op, "transcription request failed", err)
		}
	}
	return text, nil
}

// resolveUser maps the caller-supplied id to a stored user. Lookup
// errors and unknown ids both degrade to "no association".
func (s *transcriptionService) resolveUser(ctx context.Context, userID string) *string {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).
			Warn("user lookup failed, saving without association")
		return nil
	}
	if !exists {
		s.log.WithField("user_id", userID).
			Warn("user does not exist, saving without association")
		return nil
	}
	return &userID
}

func (s *transcriptionService) Save(ctx context.Context, text string, audioURL *string, userID string) (*models.Transcription, error) {
	const op = "TranscriptionService.Save"

	if userID == "" {
		return nil, utils.E(utils.CodeMissingUser, op, "Missing user_id in request", nil)
	}

	meta, _ := json.Marshal(map[string]string{"language": s.opts.Language})

	row := &models.Transcription{
		ID:            uuid.NewString(),
		Transcription: text,
		AudioURL:      audioURL,
		UserID:        s.resolveUser(ctx, userID),
		Metadata:      datatypes.JSON(meta),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodePersistence, op, "Failed to save transcription", err)
	}

	s.invalidateList(ctx)
	return row, nil
}

func (s *transcriptionService) TranscribeAndSave(ctx context.Context, audio io.Reader, userID string) (*models.Transcription, error) {
	text, err := s.Transcribe(ctx, audio)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, text, nil, userID)
}

func (s *transcriptionService) List(ctx context.Context) ([]models.Transcription, error) {
	const op = "TranscriptionService.List"

	if s.cache != nil {
		var cached []models.Transcription
		if hit, err := s.cache.GetJSON(ctx, listCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, utils.E(utils.CodePersistence, op, "Failed to fetch transcriptions", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, listCacheKey, rows, listCacheTTL); err != nil {
			s.log.WithError(err).Warn("failed to cache transcription list")
		}
	}
	return rows, nil
}

func (s *transcriptionService) Delete(ctx context.Context, id string) error {
	const op = "TranscriptionService.Delete"

	// delete-of-absent is a no-op success; the store reports no error
	if err := s.repo.Delete(ctx, id); err != nil {
		return utils.E(utils.CodePersistence, op, "Failed to delete transcription", err)
	}

	s.invalidateList(ctx)
	return nil
}

func (s *transcriptionService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, listCacheKey); err != nil {
		s.log.WithError(err).Warn("failed to invalidate transcription list cache")
	}
}
