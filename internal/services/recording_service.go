package services

import (
	"context"
	"io"
	"os"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/murmurapp/backend/internal/media"
	"github.com/murmurapp/backend/internal/recording"
	"github.com/murmurapp/backend/internal/storage"
	"github.com/murmurapp/backend/internal/utils"
)

// PublicUploadsPrefix is where the artifact directory is served from.
const PublicUploadsPrefix = "/uploads"

// FinalizeResult is what the client gets back from a stop-recording.
type FinalizeResult struct {
	MP3           string `json:"mp3"`
	Transcription string `json:"transcription"`
}

// RecordingService accumulates uploaded chunks and runs the finalize
// pipeline: convert, transcribe, persist, clean up.
type RecordingService interface {
	AppendChunk(ctx context.Context, chunk io.Reader) (int64, error)
	Finalize(ctx context.Context, userID string) (*FinalizeResult, error)
}

// finalizeState is the explicit step machine behind Finalize. A failure
// in any step aborts the run; there is no Failed state value because
// the error return is the absorbing state.
type finalizeState int

const (
	stateConverting finalizeState = iota
	stateTranscribing
	statePersisting
	stateDone
)

type recordingService struct {
	sessions    *recording.Manager
	converter   media.Converter
	transcripts TranscriptionService
	uploader    storage.Uploader // optional
	log         *logrus.Logger
}

func NewRecordingService(
	sessions *recording.Manager,
	converter media.Converter,
	transcripts TranscriptionService,
	uploader storage.Uploader,
	log *logrus.Logger,
) RecordingService {
	if log == nil {
		log = logrus.New()
	}
	return &recordingService{
		sessions:    sessions,
		converter:   converter,
		transcripts: transcripts,
		uploader:    uploader,
		log:         log,
	}
}

func (s *recordingService) AppendChunk(ctx context.Context, chunk io.Reader) (int64, error) {
	const op = "RecordingService.AppendChunk"

	n, err := s.sessions.Default().Append(chunk)
	if err != nil {
		return 0, utils.E(utils.CodeIO, op, "Failed to append chunk", err)
	}
	return n, nil
}

// finalizeFlow carries the values produced along one finalize run.
type finalizeFlow struct {
	sess     *recording.Session
	userID   string
	text     string
	audioURL *string
}

func (s *recordingService) Finalize(ctx context.Context, userID string) (*FinalizeResult, error) {
	const op = "RecordingService.Finalize"

	sess := s.sessions.Default()
	if !sess.HasRecording() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "No recording found to convert", nil)
	}

	if err := sess.BeginFinalize(); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "Finalize already in progress", err)
	}
	defer sess.EndFinalize()

	flow := &finalizeFlow{sess: sess, userID: userID}

	for state := stateConverting; state != stateDone; {
		var err error
		switch state {
		case stateConverting:
			state, err = s.convert(ctx, flow)
		case stateTranscribing:
			state, err = s.transcribe(ctx, flow)
		case statePersisting:
			state, err = s.persist(ctx, flow)
		}
		if err != nil {
			return nil, err
		}
	}

	res := &FinalizeResult{
		MP3:           path.Join(PublicUploadsPrefix, path.Base(sess.ArtifactPath())),
		Transcription: flow.text,
	}

	// With a durable copy in object storage the local artifact is no
	// longer needed; otherwise it stays behind the static route so the
	// client can play it back.
	if flow.audioURL != nil {
		if err := sess.RemoveArtifact(); err != nil {
			s.log.WithError(err).Warn("failed to remove converted artifact")
		}
	}
	return res, nil
}

// convert turns the working file into the MP3 artifact. The working
// file is consumed (deleted) only on success; on failure it stays put
// so the recording is not lost.
func (s *recordingService) convert(ctx context.Context, f *finalizeFlow) (finalizeState, error) {
	const op = "RecordingService.Finalize"

	if err := s.converter.Convert(ctx, f.sess.WorkingPath(), f.sess.ArtifactPath()); err != nil {
		return 0, utils.E(utils.CodeConversion, op, "MP3 conversion failed", err)
	}
	if err := f.sess.RemoveWorking(); err != nil {
		s.log.WithError(err).Warn("failed to remove working recording file")
	}
	return stateTranscribing, nil
}

// transcribe runs the artifact through the speech provider. On failure
// the artifact is intentionally left on disk for diagnosis and retry.
func (s *recordingService) transcribe(ctx context.Context, f *finalizeFlow) (finalizeState, error) {
	const op = "RecordingService.Finalize"

	audio, err := os.Open(f.sess.ArtifactPath())
	if err != nil {
		return 0, utils.E(utils.CodeIO, op, "Failed to read converted audio", err)
	}
	defer audio.Close()

	text, err := s.transcripts.Transcribe(ctx, audio)
	if err != nil {
		return 0, err
	}
	f.text = text
	return statePersisting, nil
}

// persist uploads the artifact when object storage is configured, then
// saves the transcript. The upload is best-effort: a failed upload only
// costs the audio_url.
func (s *recordingService) persist(ctx context.Context, f *finalizeFlow) (finalizeState, error) {
	if s.uploader != nil {
		f.audioURL = s.uploadArtifact(ctx, f.sess)
	}

	if _, err := s.transcripts.Save(ctx, f.text, f.audioURL, f.userID); err != nil {
		return 0, err
	}
	return stateDone, nil
}

func (s *recordingService) uploadArtifact(ctx context.Context, sess *recording.Session) *string {
	audio, err := os.Open(sess.ArtifactPath())
	if err != nil {
		s.log.WithError(err).Warn("failed to open artifact for upload")
		return nil
	}
	defer audio.Close()

	object := "recordings/" + sess.ID + "/" + path.Base(sess.ArtifactPath())
	url, err := s.uploader.Upload(ctx, object, "audio/mpeg", audio)
	if err != nil {
		s.log.WithError(err).Warn("failed to upload artifact, saving without audio_url")
		return nil
	}
	return &url
}
