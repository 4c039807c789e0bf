package storage

import (
	"context"
	"io"
)

// Uploader copies a finished artifact to durable object storage and
// returns the URL it is reachable at.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (url string, err error)
}
