package stt

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Options are the recognition hints forwarded to the provider.
type Options struct {
	Punctuate bool
	Language  string // BCP-47, ex: "en-US"
}

// Provider is a batch speech-to-text backend: one audio stream in, one
// transcript out. Implementations validate the provider response once,
// so callers never re-check optional nesting; a failed call is either a
// *ProviderError, ErrEmptyResult, or a transport error.
type Provider interface {
	Transcribe(ctx context.Context, audio io.Reader, opts Options) (string, error)
	Close() error
}

// ErrEmptyResult means the provider answered without any recognizable
// channel/alternative structure.
var ErrEmptyResult = errors.New("no transcription channels found")

// ProviderError is an error reported by the speech service itself, as
// opposed to a transport failure reaching it.
type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Config carries the credentials the registry may need.
type Config struct {
	DeepgramAPIKey string
}

// New builds a Provider by name. An empty name selects Deepgram.
func New(ctx context.Context, name string, cfg Config) (Provider, error) {
	switch name {
	case "", "deepgram":
		if cfg.DeepgramAPIKey == "" {
			return nil, errors.New("stt: deepgram api key is empty")
		}
		return NewDeepgram(cfg.DeepgramAPIKey), nil
	case "google":
		return NewGoogleSpeech(ctx)
	default:
		return nil, fmt.Errorf("stt: unknown provider %q", name)
	}
}
