package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"coverpost_api/types"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	ImageHost string

	CloudinaryCloudName    string
	CloudinaryApiKey       string
	CloudinarySecret       string
	CloudinaryUploadPrefix string

	GcsBucket             string
	GoogleCredentialsFile string

	AwsBucketName      string
	AwsRegion          string
	AwsAccessKeyId     string
	AwsSecretAccessKey string

	UploadGatewayUrl     string
	UploadGatewayTimeout time.Duration

	LogProjectId string
	LogName      string
}

// Loads .env when present, then reads the configuration from the environment
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := &Config{
		Port:                   get("PORT", "8080"),
		ImageHost:              strings.ToLower(get("IMAGE_HOST", types.IMAGE_HOST_CLOUDINARY)),
		CloudinaryCloudName:    get("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryApiKey:       get("CLOUDINARY_API_KEY", ""),
		CloudinarySecret:       get("CLOUDINARY_SECRET", ""),
		CloudinaryUploadPrefix: get("CLOUDINARY_UPLOAD_PREFIX", ""),
		GcsBucket:              get("GCS_BUCKET", ""),
		GoogleCredentialsFile:  get("GOOGLE_APPLICATION_CREDENTIALS_FILE", ""),
		AwsBucketName:          get("AWS_BUCKET_NAME", ""),
		AwsRegion:              get("AWS_REGION", ""),
		AwsAccessKeyId:         get("AWS_ACCESS_KEY_ID", ""),
		AwsSecretAccessKey:     get("AWS_SECRET_ACCESS_KEY", ""),
		LogProjectId:           get("LOG_PROJECT_ID", ""),
		LogName:                get("LOG_NAME", "coverpost-api"),
	}
	cfg.UploadGatewayUrl = get("UPLOAD_GATEWAY_URL", "http://127.0.0.1:"+cfg.Port+types.UPLOAD_API_PATH)

	timeout, err := time.ParseDuration(get("UPLOAD_GATEWAY_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_GATEWAY_TIMEOUT: %w", err)
	}
	cfg.UploadGatewayTimeout = timeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Checks that the secrets of the selected image host are present
func (c *Config) Validate() error {
	var missing []string
	require := func(key, value string) {
		if value == "" {
			missing = append(missing, key)
		}
	}

	switch c.ImageHost {
	case types.IMAGE_HOST_CLOUDINARY:
		require("CLOUDINARY_CLOUD_NAME", c.CloudinaryCloudName)
		require("CLOUDINARY_API_KEY", c.CloudinaryApiKey)
		require("CLOUDINARY_SECRET", c.CloudinarySecret)
	case types.IMAGE_HOST_GCS:
		require("GCS_BUCKET", c.GcsBucket)
	case types.IMAGE_HOST_S3:
		require("AWS_BUCKET_NAME", c.AwsBucketName)
		require("AWS_REGION", c.AwsRegion)
		require("AWS_ACCESS_KEY_ID", c.AwsAccessKeyId)
		require("AWS_SECRET_ACCESS_KEY", c.AwsSecretAccessKey)
	default:
		return fmt.Errorf("unknown IMAGE_HOST %q", c.ImageHost)
	}

	if len(missing) > 0 {
		return errors.New("missing configuration: " + strings.Join(missing, ", "))
	}

	return nil
}
