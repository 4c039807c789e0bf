package stt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestDeepgram(t *testing.T, handler http.HandlerFunc) *Deepgram {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	d := NewDeepgram("test-key")
	d.baseURL = srv.URL
	return d
}

func TestDeepgramTranscribe(t *testing.T) {
	audio := []byte("fake-mp3-bytes")

	d := newTestDeepgram(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Token test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("punctuate"); got != "true" {
			t.Errorf("punctuate = %q", got)
		}
		if got := r.URL.Query().Get("language"); got != "en-US" {
			t.Errorf("language = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if !bytes.Equal(body, audio) {
			t.Errorf("body = %q, want %q", body, audio)
		}

		w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":"hello world","confidence":0.98}]}]}}`))
	})

	text, err := d.Transcribe(context.Background(), bytes.NewReader(audio), Options{Punctuate: true, Language: "en-US"})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "hello world" {
		t.Errorf("text = %q, want %q", text, "hello world")
	}
}

func TestDeepgramTranscribeProviderError(t *testing.T) {
	d := newTestDeepgram(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"err_code":"INVALID_AUTH","err_msg":"Invalid credentials."}`))
	})

	_, err := d.Transcribe(context.Background(), bytes.NewReader(nil), Options{})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ProviderError", err)
	}
	if pe.Message != "Invalid credentials." {
		t.Errorf("message = %q", pe.Message)
	}
}

func TestDeepgramTranscribeHTTPError(t *testing.T) {
	d := newTestDeepgram(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{}`))
	})

	_, err := d.Transcribe(context.Background(), bytes.NewReader(nil), Options{})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ProviderError", err)
	}
}

func TestDeepgramTranscribeEmptyResult(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no channels", `{"results":{"channels":[]}}`},
		{"no alternatives", `{"results":{"channels":[{"alternatives":[]}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeepgram(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := d.Transcribe(context.Background(), bytes.NewReader(nil), Options{})
			if !errors.Is(err, ErrEmptyResult) {
				t.Errorf("err = %v, want ErrEmptyResult", err)
			}
		})
	}
}

func TestNewSelectsProvider(t *testing.T) {
	p, err := New(context.Background(), "deepgram", Config{DeepgramAPIKey: "k"})
	if err != nil {
		t.Fatalf("New(deepgram): %v", err)
	}
	if _, ok := p.(*Deepgram); !ok {
		t.Errorf("provider = %T, want *Deepgram", p)
	}

	if _, err := New(context.Background(), "deepgram", Config{}); err == nil {
		t.Error("expected error without api key")
	}
	if _, err := New(context.Background(), "nope", Config{}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
