package uploaders

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"coverpost_api/logs"
	"coverpost_api/tools"
	"coverpost_api/types"

	"cloud.google.com/go/logging"
	"cloud.google.com/go/storage"
)

// GCSUploader stores covers in a Firebase Storage bucket and serves them
// through a download token URL.
type GCSUploader struct {
	client *storage.Client
	bucket string
	logger logs.Logger
}

func NewGCSUploader(logger logs.Logger, client *storage.Client, bucket string) *GCSUploader {
	return &GCSUploader{client: client, bucket: bucket, logger: logger}
}

func (u *GCSUploader) Upload(ctx context.Context, filePath string, params types.UploadParams) (*types.UploadResult, error) {
	local, err := describeLocalFile(u.logger, filePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	storagePath := tools.AssetPath(params.Folder, params.PublicId)
	obj := u.client.Bucket(u.bucket).Object(storagePath)

	sw := obj.NewWriter(ctx)
	sw.ContentType = local.contentType

	if _, err := io.Copy(sw, file); err != nil {
		sw.Close()
		return nil, fmt.Errorf("error writing image to storage: %w", err)
	}
	if err := sw.Close(); err != nil {
		return nil, fmt.Errorf("error closing storage writer: %w", err)
	}

	downloadToken, err := tools.GenerateRandomName()
	if err != nil {
		return nil, err
	}
	if err := updateFirebaseStorageDownloadToken(ctx, obj, downloadToken); err != nil {
		return nil, fmt.Errorf("error updating download token: %w", err)
	}

	u.logger.Log(logging.Entry{
		Severity: logging.Info,
		Payload:  "Image uploaded to storage",
		Labels:   map[string]string{"bucket": u.bucket, "path": storagePath},
	})

	url := tools.FirebaseDownloadUrl(u.bucket, storagePath, downloadToken)

	return local.result(params, storagePath, url, sw.Attrs().Created), nil
}

// Updates the download token for a file in Firebase Storage
func updateFirebaseStorageDownloadToken(ctx context.Context, obj *storage.ObjectHandle, token string) error {
	_, err := obj.Update(ctx, storage.ObjectAttrsToUpdate{
		Metadata: map[string]string{
			"firebaseStorageDownloadTokens": token,
		},
	})
	return err
}

// Properties of the local file that self-hosted backends must compute
// themselves, since the storage API does not analyse images.
type localFile struct {
	contentType string
	width       int
	height      int
	size        int64
}

func describeLocalFile(logger logs.Logger, filePath string) (*localFile, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}

	contentType, err := tools.DetectContentType(filePath)
	if err != nil {
		return nil, err
	}

	width, height, err := tools.MeasureImage(logger, filePath)
	if err != nil {
		logger.Log(logging.Entry{
			Severity: logging.Warning,
			Payload:  "Could not measure image, reporting zero dimensions",
			Labels:   map[string]string{"error": err.Error()},
		})
		width, height = 0, 0
	}

	return &localFile{
		contentType: contentType,
		width:       width,
		height:      height,
		size:        info.Size(),
	}, nil
}

func (l *localFile) result(params types.UploadParams, assetPath, url string, created time.Time) *types.UploadResult {
	if created.IsZero() {
		created = time.Now().UTC()
	}

	return &types.UploadResult{
		PublicId:     assetPath,
		Width:        l.width,
		Height:       l.height,
		Format:       formatFromContentType(l.contentType),
		ResourceType: "image",
		Bytes:        int(l.size),
		Type:         "upload",
		Url:          url,
		SecureUrl:    url,
		Folder:       params.Folder,
		CreatedAt:    created,
	}
}

func formatFromContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/bmp":
		return "bmp"
	default:
		return ""
	}
}
