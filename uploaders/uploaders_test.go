package uploaders

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"coverpost_api/logs"
	"coverpost_api/tools"
	"coverpost_api/types"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func quietLogger() logs.Logger {
	return logs.NewStdoutLogger(io.Discard)
}

func writePNG(t *testing.T, width, height int) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))

	path := filepath.Join(t.TempDir(), "0123456789abcdef")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestCloudinaryUploaderSendsFolderAndPublicId(t *testing.T) {
	var mu sync.Mutex
	var calls int
	var folder, publicId string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(10<<20))

		mu.Lock()
		calls++
		folder = r.FormValue("folder")
		publicId = r.FormValue("public_id")
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"asset_id": "asset-1",
			"public_id": "nf example/0123456789abcdef",
			"version": 1712345678,
			"width": 640,
			"height": 480,
			"format": "png",
			"resource_type": "image",
			"created_at": "2024-04-05T10:00:00Z",
			"bytes": 1234,
			"type": "upload",
			"url": "http://res.cloudinary.com/demo/image/upload/v1712345678/nf%20example/0123456789abcdef.png",
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1712345678/nf%20example/0123456789abcdef.png",
			"original_filename": "0123456789abcdef",
			"signature": "f1e2d3",
			"etag": "9a8b7c",
			"tags": [],
			"placeholder": false
		}`)
	}))
	defer server.Close()

	uploader, err := NewCloudinaryUploader(quietLogger(), "demo", "key", "secret", server.URL)
	require.NoError(t, err)

	result, err := uploader.Upload(context.Background(), writePNG(t, 2, 2), types.UploadParams{
		PublicId: "0123456789abcdef",
		Folder:   types.UPLOAD_FOLDER,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "nf example", folder)
	assert.Equal(t, "0123456789abcdef", publicId)

	assert.Equal(t, "nf example/0123456789abcdef", result.PublicId)
	assert.Equal(t, 640, result.Width)
	assert.Equal(t, 480, result.Height)
	assert.True(t, strings.HasPrefix(result.Url, "http://res.cloudinary.com/"))
	assert.Equal(t, "nf example", result.Folder)

	assert.Equal(t, "f1e2d3", result.Extra["signature"])
	assert.Equal(t, "9a8b7c", result.Extra["etag"])
	assert.Contains(t, result.Extra, "placeholder")
}

func TestCloudinaryUploaderReportsApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error": {"message": "Invalid api_key key"}}`)
	}))
	defer server.Close()

	uploader, err := NewCloudinaryUploader(quietLogger(), "demo", "key", "secret", server.URL)
	require.NoError(t, err)

	_, err = uploader.Upload(context.Background(), writePNG(t, 2, 2), types.UploadParams{PublicId: "x", Folder: types.UPLOAD_FOLDER})
	assert.Error(t, err)
}

func TestS3UploaderPutsObjectUnderFolder(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewS3Client(context.Background(), "eu-west-3", "AKID", "SECRET", func(o *s3.Options) {
		o.BaseEndpoint = aws.String(server.URL)
		o.UsePathStyle = true
	})
	require.NoError(t, err)

	path := writePNG(t, 12, 7)
	uploader := NewS3Uploader(quietLogger(), client, "covers", "eu-west-3")

	result, err := uploader.Upload(context.Background(), path, types.UploadParams{
		PublicId: "0123456789abcdef",
		Folder:   types.UPLOAD_FOLDER,
	})
	require.NoError(t, err)

	want, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/covers/nf example/0123456789abcdef", gotPath)
	assert.Equal(t, "image/png", gotContentType)
	assert.Equal(t, want, gotBody)

	assert.Equal(t, "https://covers.s3.eu-west-3.amazonaws.com/nf%20example/0123456789abcdef", result.Url)
	assert.Equal(t, 12, result.Width)
	assert.Equal(t, 7, result.Height)
	assert.Equal(t, "png", result.Format)
	assert.Equal(t, len(want), result.Bytes)
}

// fakeGCS answers the two JSON API calls the GCS uploader makes: a
// multipart object insert and the metadata patch.
type fakeGCS struct {
	mu          sync.Mutex
	name        string
	contentType string
	media       []byte
	patchedPath string
	metadata    map[string]string
}

func (f *fakeGCS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/upload/storage/v1/b/covers/o":
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		reader := multipart.NewReader(r.Body, params["boundary"])

		meta, err := reader.NextPart()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var attrs struct {
			Name        string `json:"name"`
			ContentType string `json:"contentType"`
		}
		if err := json.NewDecoder(meta).Decode(&attrs); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		media, err := reader.NextPart()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.media, _ = io.ReadAll(media)
		f.name = attrs.Name
		f.contentType = attrs.ContentType

	case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/storage/v1/b/covers/o/"):
		var patch struct {
			Metadata map[string]string `json:"metadata"`
		}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.patchedPath = strings.TrimPrefix(r.URL.Path, "/storage/v1/b/covers/o/")
		f.metadata = patch.Metadata

	default:
		http.Error(w, "unexpected "+r.Method+" "+r.URL.Path, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"bucket":      "covers",
		"name":        f.name,
		"contentType": f.contentType,
		"size":        strconv.Itoa(len(f.media)),
		"timeCreated": "2024-04-05T10:00:00Z",
		"metadata":    f.metadata,
	})
}

func TestGCSUploaderStoresObjectWithDownloadToken(t *testing.T) {
	t.Setenv("STORAGE_EMULATOR_HOST", "")

	fake := &fakeGCS{}
	server := httptest.NewServer(fake)
	defer server.Close()

	client, err := storage.NewClient(context.Background(),
		option.WithEndpoint(server.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	defer client.Close()

	path := writePNG(t, 9, 4)
	uploader := NewGCSUploader(quietLogger(), client, "covers")

	result, err := uploader.Upload(context.Background(), path, types.UploadParams{
		PublicId: "0123456789abcdef",
		Folder:   types.UPLOAD_FOLDER,
	})
	require.NoError(t, err)

	want, err := os.ReadFile(path)
	require.NoError(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()

	assert.Equal(t, "nf example/0123456789abcdef", fake.name)
	assert.Equal(t, "image/png", fake.contentType)
	assert.Equal(t, want, fake.media)
	assert.Equal(t, "nf example/0123456789abcdef", fake.patchedPath)

	token := fake.metadata["firebaseStorageDownloadTokens"]
	require.NotEmpty(t, token)

	assert.Equal(t, tools.FirebaseDownloadUrl("covers", "nf example/0123456789abcdef", token), result.Url)
	assert.Equal(t, "nf example/0123456789abcdef", result.PublicId)
	assert.Equal(t, 9, result.Width)
	assert.Equal(t, 4, result.Height)
	assert.Equal(t, "png", result.Format)
	assert.Equal(t, len(want), result.Bytes)
	assert.Equal(t, "nf example", result.Folder)
	assert.True(t, time.Date(2024, 4, 5, 10, 0, 0, 0, time.UTC).Equal(result.CreatedAt))
}

func TestDescribeLocalFileToleratesNonImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o600))

	local, err := describeLocalFile(quietLogger(), path)
	require.NoError(t, err)

	assert.Equal(t, 0, local.width)
	assert.Equal(t, 0, local.height)
	assert.Equal(t, int64(len("just text")), local.size)
	assert.Equal(t, "", formatFromContentType(local.contentType))

	result := local.result(types.UploadParams{Folder: types.UPLOAD_FOLDER}, "nf example/plain", "https://host/plain", time.Time{})
	assert.False(t, result.CreatedAt.IsZero())
	assert.Equal(t, "https://host/plain", result.Url)
}
