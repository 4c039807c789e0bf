package stt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const deepgramBaseURL = "https://api.deepgram.com"

// Deepgram calls the prerecorded listen API over HTTP.
type Deepgram struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewDeepgram(apiKey string) *Deepgram {
	return &Deepgram{
		apiKey:  apiKey,
		baseURL: deepgramBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (d *Deepgram) Close() error { return nil }

type deepgramResponse struct {
	ErrCode string `json:"err_code"`
	ErrMsg  string `json:"err_msg"`
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (d *Deepgram) Transcribe(ctx context.Context, audio io.Reader, opts Options) (string, error) {
	q := url.Values{}
	if opts.Punctuate {
		q.Set("punctuate", "true")
	}
	if opts.Language != "" {
		q.Set("language", opts.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/v1/listen?"+q.Encode(), audio)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Token "+d.apiKey)
	req.Header.Set("Content-Type", "audio/mpeg")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepgram request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("deepgram: read response: %w", err)
	}

	var out deepgramResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("deepgram: parse response: %w", err)
	}

	if out.ErrMsg != "" {
		return "", &ProviderError{Provider: "deepgram", Message: out.ErrMsg}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{Provider: "deepgram", Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, body)}
	}

	chans := out.Results.Channels
	if len(chans) == 0 || len(chans[0].Alternatives) == 0 {
		return "", ErrEmptyResult
	}
	return chans[0].Alternatives[0].Transcript, nil
}
