package uploaders

import (
	"context"
	"errors"
	"fmt"

	"coverpost_api/logs"
	"coverpost_api/types"

	"cloud.google.com/go/logging"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	logger logs.Logger
}

// uploadPrefix overrides the API host when non empty
func NewCloudinaryUploader(logger logs.Logger, cloudName, apiKey, apiSecret, uploadPrefix string) (*CloudinaryUploader, error) {
	conf, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("error configuring cloudinary: %w", err)
	}
	if uploadPrefix != "" {
		conf.API.UploadPrefix = uploadPrefix
	}

	cld, err := cloudinary.NewFromConfiguration(*conf)
	if err != nil {
		return nil, fmt.Errorf("error initializing cloudinary: %w", err)
	}

	return &CloudinaryUploader{cld: cld, logger: logger}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, filePath string, params types.UploadParams) (*types.UploadResult, error) {
	result, err := u.cld.Upload.Upload(ctx, filePath, uploader.UploadParams{
		PublicID: params.PublicId,
		Folder:   params.Folder,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return nil, errors.New("cloudinary upload: " + result.Error.Message)
	}

	u.logger.Log(logging.Entry{
		Severity: logging.Info,
		Payload:  "Result from cloudinary",
		Labels: map[string]string{
			"publicId": result.PublicID,
			"url":      result.URL,
		},
	})

	return &types.UploadResult{
		PublicId:         result.PublicID,
		AssetId:          result.AssetID,
		Version:          result.Version,
		Width:            result.Width,
		Height:           result.Height,
		Format:           result.Format,
		ResourceType:     result.ResourceType,
		Bytes:            result.Bytes,
		Type:             result.Type,
		Url:              result.URL,
		SecureUrl:        result.SecureURL,
		OriginalFilename: result.OriginalFilename,
		Folder:           params.Folder,
		CreatedAt:        result.CreatedAt,
		Extra:            rawPayload(result),
	}, nil
}

// The client keeps the decoded response body next to the typed fields
func rawPayload(result *uploader.UploadResult) map[string]any {
	switch raw := result.Response.(type) {
	case *map[string]interface{}:
		if raw != nil {
			return *raw
		}
	case map[string]interface{}:
		return raw
	}
	return nil
}
