package uploaders

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"coverpost_api/logs"
	"coverpost_api/tools"
	"coverpost_api/types"

	"cloud.google.com/go/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Uploader struct {
	client *s3.Client
	bucket string
	region string
	logger logs.Logger
}

func NewS3Client(ctx context.Context, region, accessKeyId, secretAccessKey string, optFns ...func(*s3.Options)) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyId,
			secretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, optFns...), nil
}

func NewS3Uploader(logger logs.Logger, client *s3.Client, bucket, region string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, region: region, logger: logger}
}

func (u *S3Uploader) Upload(ctx context.Context, filePath string, params types.UploadParams) (*types.UploadResult, error) {
	local, err := describeLocalFile(u.logger, filePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	key := tools.AssetPath(params.Folder, params.PublicId)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(local.contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload: %w", err)
	}

	u.logger.Log(logging.Entry{
		Severity: logging.Info,
		Payload:  "Image uploaded to S3",
		Labels:   map[string]string{"bucket": u.bucket, "key": key},
	})

	return local.result(params, key, S3PublicUrl(u.bucket, u.region, key), time.Time{}), nil
}

func S3PublicUrl(bucket, region, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, strings.Join(segments, "/"))
}
