package clients

import (
	"context"
	"fmt"

	"coverpost_api/config"
	"coverpost_api/logs"
	"coverpost_api/posts"
	"coverpost_api/types"
	"coverpost_api/uploaders"

	"cloud.google.com/go/logging"
	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// App holds everything the routes are built from.
type App struct {
	Context  context.Context
	Logger   logs.Logger
	Uploader uploaders.ImageUploader
	Gateway  UploadGateway
	Sessions *posts.Sessions

	closers []func() error
}

func InitApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Context: ctx, Sessions: posts.NewSessions()}

	// Initialize logging, Cloud Logging when a project is configured
	if cfg.LogProjectId != "" {
		loggingClient, logger, err := logs.NewCloudLogger(ctx, cfg.LogProjectId, cfg.LogName, googleOptions(cfg)...)
		if err != nil {
			return nil, err
		}
		app.Logger = logger
		app.closers = append(app.closers, loggingClient.Close)
	} else {
		app.Logger = logs.NewStdoutLogger(nil)
	}

	app.Logger.Log(logging.Entry{
		Severity: logging.Info,
		Payload:  "Logging client initialized successfully",
		Labels:   map[string]string{"status": "success"},
	})

	uploader, err := app.initUploader(ctx, cfg)
	if err != nil {
		app.Logger.Log(logging.Entry{
			Severity: logging.Error,
			Payload:  "Error initializing image uploader",
			Labels:   map[string]string{"error": err.Error(), "imageHost": cfg.ImageHost},
		})
		app.Close()
		return nil, err
	}
	app.Uploader = uploader

	app.Logger.Log(logging.Entry{
		Severity: logging.Info,
		Payload:  "Image uploader initialized successfully",
		Labels:   map[string]string{"status": "success", "imageHost": cfg.ImageHost},
	})

	app.Gateway = NewUploadGatewayClient(cfg.UploadGatewayUrl, cfg.UploadGatewayTimeout)

	return app, nil
}

func (app *App) initUploader(ctx context.Context, cfg *config.Config) (uploaders.ImageUploader, error) {
	switch cfg.ImageHost {
	case types.IMAGE_HOST_CLOUDINARY:
		return uploaders.NewCloudinaryUploader(app.Logger, cfg.CloudinaryCloudName, cfg.CloudinaryApiKey, cfg.CloudinarySecret, cfg.CloudinaryUploadPrefix)

	case types.IMAGE_HOST_GCS:
		gcs, err := storage.NewClient(ctx, googleOptions(cfg)...)
		if err != nil {
			return nil, fmt.Errorf("error initializing Google Cloud Storage client: %w", err)
		}
		app.closers = append(app.closers, gcs.Close)
		return uploaders.NewGCSUploader(app.Logger, gcs, cfg.GcsBucket), nil

	case types.IMAGE_HOST_S3:
		client, err := uploaders.NewS3Client(ctx, cfg.AwsRegion, cfg.AwsAccessKeyId, cfg.AwsSecretAccessKey)
		if err != nil {
			return nil, err
		}
		return uploaders.NewS3Uploader(app.Logger, client, cfg.AwsBucketName, cfg.AwsRegion), nil

	default:
		return nil, fmt.Errorf("unknown image host %q", cfg.ImageHost)
	}
}

func googleOptions(cfg *config.Config) []option.ClientOption {
	if cfg.GoogleCredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(cfg.GoogleCredentialsFile)}
}

// Close flushes the logger and releases the clients, last opened first
func (app *App) Close() error {
	var firstErr error
	if app.Logger != nil {
		firstErr = app.Logger.Flush()
	}
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	app.closers = nil
	return firstErr
}
