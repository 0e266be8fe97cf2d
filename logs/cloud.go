package logs

import (
	"context"
	"fmt"

	"cloud.google.com/go/logging"
	"google.golang.org/api/option"
)

// NewCloudLogger opens a Cloud Logging client for projectID. The returned
// client must be closed on shutdown to flush buffered entries.
func NewCloudLogger(ctx context.Context, projectID, logName string, opts ...option.ClientOption) (*logging.Client, *logging.Logger, error) {
	client, err := logging.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing logging client: %w", err)
	}

	client.OnError = func(err error) {
		NewStdoutLogger(nil).Log(logging.Entry{
			Severity: logging.Error,
			Payload:  "Cloud logging error: " + err.Error(),
		})
	}

	return client, client.Logger(logName), nil
}
