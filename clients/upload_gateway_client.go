package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"coverpost_api/types"

	"github.com/go-resty/resty/v2"
)

// CoverSubmission is what the post form hands to the upload gateway.
// Cover may be nil, in which case no file part is sent.
type CoverSubmission struct {
	Title         string
	Content       string
	Cover         io.Reader
	CoverFilename string
}

type UploadGateway interface {
	UploadCover(ctx context.Context, submission CoverSubmission) (*types.UploadResult, error)
}

// GatewayError is a non 2xx answer of the upload gateway.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("upload gateway responded %d: %s", e.StatusCode, e.Message)
}

type gatewayErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// UploadGatewayClient posts form submissions to the upload gateway endpoint.
type UploadGatewayClient struct {
	client *resty.Client
	url    string
}

func NewUploadGatewayClient(url string, timeout time.Duration) *UploadGatewayClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &UploadGatewayClient{client: client, url: url}
}

func (g *UploadGatewayClient) UploadCover(ctx context.Context, submission CoverSubmission) (*types.UploadResult, error) {
	req := g.client.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			types.POST_FORM_FIELD_TITLE:   submission.Title,
			types.POST_FORM_FIELD_CONTENT: submission.Content,
		}).
		SetResult(&types.UploadResult{}).
		SetError(&gatewayErrorBody{})

	if submission.Cover != nil {
		req.SetFileReader(types.UPLOAD_FILE_FIELD, submission.CoverFilename, submission.Cover)
	}

	resp, err := req.Post(g.url)
	if err != nil {
		return nil, fmt.Errorf("error calling upload gateway: %w", err)
	}

	if resp.IsError() {
		message := http.StatusText(resp.StatusCode())
		if body, ok := resp.Error().(*gatewayErrorBody); ok {
			if body.Error != "" {
				message = body.Error
			} else if body.Message != "" {
				message = body.Message
			}
		}
		return nil, &GatewayError{StatusCode: resp.StatusCode(), Message: message}
	}

	result, ok := resp.Result().(*types.UploadResult)
	if !ok || result == nil {
		return nil, fmt.Errorf("unexpected upload gateway response: %s", resp.String())
	}

	return result, nil
}
