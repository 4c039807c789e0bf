package recording

import (
	"errors"
	"io"
	"os"
	"sync"
)

// Legacy fixed names kept for the default session so single-recorder
// clients keep their URLs.
const (
	DefaultWorkingName  = "live_recording.webm"
	DefaultArtifactName = "final_recording.mp3"
)

// ErrFinalizeInProgress is returned when a second finalize is attempted
// while one is already running against the same session.
var ErrFinalizeInProgress = errors.New("finalize already in progress")

// Session is one recording in flight: a working file that chunks are
// appended to, and the artifact path its conversion writes. Appends are
// ordered only as far as the caller serializes its upload requests; the
// session neither reorders nor deduplicates.
type Session struct {
	ID string

	workingPath  string
	artifactPath string

	mu         sync.Mutex
	finalizing bool
}

func (s *Session) WorkingPath() string  { return s.workingPath }
func (s *Session) ArtifactPath() string { return s.artifactPath }

// Append copies one chunk byte-for-byte onto the end of the working
// file, creating it on the first call.
func (s *Session) Append(chunk io.Reader) (int64, error) {
	f, err := os.OpenFile(s.workingPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, chunk)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// HasRecording reports whether any chunk has been appended since the
// working file was last consumed.
func (s *Session) HasRecording() bool {
	_, err := os.Stat(s.workingPath)
	return err == nil
}

// BeginFinalize takes the session's single-flight finalize slot. The
// working and artifact paths are process-wide per session, so a second
// concurrent finalize would corrupt them.
func (s *Session) BeginFinalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalizing {
		return ErrFinalizeInProgress
	}
	s.finalizing = true
	return nil
}

func (s *Session) EndFinalize() {
	s.mu.Lock()
	s.finalizing = false
	s.mu.Unlock()
}

// RemoveWorking deletes the working file. Missing is fine.
func (s *Session) RemoveWorking() error {
	err := os.Remove(s.workingPath)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// RemoveArtifact deletes the converted artifact. Missing is fine.
func (s *Session) RemoveArtifact() error {
	err := os.Remove(s.artifactPath)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
