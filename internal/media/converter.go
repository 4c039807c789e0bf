// Package media converts accumulated recordings into distributable
// audio by shelling out to ffmpeg.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

type Converter interface {
	// Convert transcodes src into an MP3 at dst. On error no artifact
	// is guaranteed to exist. No internal retry.
	Convert(ctx context.Context, src, dst string) error
}

// FFmpeg invokes the ffmpeg binary. The zero value is not usable; use
// NewFFmpeg.
type FFmpeg struct {
	bin string
}

func NewFFmpeg() *FFmpeg {
	bin := os.Getenv("FFMPEG_PATH")
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpeg{bin: bin}
}

func (f *FFmpeg) Convert(ctx context.Context, src, dst string) error {
	cmd := exec.CommandContext(ctx, f.bin, convertArgs(src, dst)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(stderr.Bytes()))
	}
	return nil
}

func convertArgs(src, dst string) []string {
	return []string{
		"-y", "-i", src,
		"-vn",
		"-codec:a", "libmp3lame",
		"-q:a", "2",
		dst,
	}
}

// lastLine trims ffmpeg's banner noise down to the line that usually
// names the actual failure.
func lastLine(out []byte) string {
	out = bytes.TrimRight(out, "\r\n")
	if i := bytes.LastIndexByte(out, '\n'); i >= 0 {
		out = out[i+1:]
	}
	return string(out)
}
