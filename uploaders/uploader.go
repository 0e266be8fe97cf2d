// Package uploaders relays local files to an external image host.
package uploaders

import (
	"context"

	"coverpost_api/types"
)

// ImageUploader uploads the file at filePath and returns the host's result.
type ImageUploader interface {
	Upload(ctx context.Context, filePath string, params types.UploadParams) (*types.UploadResult, error)
}
