package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"coverpost_api/logs"
	"coverpost_api/middlewares"
	"coverpost_api/tools"
	"coverpost_api/types"
	"coverpost_api/uploaders"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
)

// UploadHandler relays the cover file of a multipart POST to the image host
// and answers with the host's result.
func UploadHandler(logger logs.Logger, uploader uploaders.ImageUploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			logger.Log(logging.Entry{
				Severity: logging.Warning,
				Payload:  "Method not allowed",
				Labels:   map[string]string{"method": c.Request.Method, "route": c.Request.URL.Path},
			})
			c.JSON(http.StatusBadRequest, gin.H{"message": "Method not allowed"})
			return
		}

		// Use the middleware
		middlewares.CoverFileMiddleware(logger)(c)
		if c.IsAborted() {
			return
		}

		coverFile, ok := middlewares.CoverFileFromContext(c)
		if !ok {
			tools.LogError(logger, c, http.StatusInternalServerError, errors.New("error getting cover file from context"))
			return
		}
		defer removeTempFile(logger, coverFile.Path)

		result, err := uploader.Upload(c.Request.Context(), coverFile.Path, types.UploadParams{
			PublicId: coverFile.NewFilename,
			Folder:   types.UPLOAD_FOLDER,
		})
		if err != nil {
			tools.LogError(logger, c, http.StatusBadGateway, fmt.Errorf("error uploading image: %w", err))
			return
		}

		logger.Log(logging.Entry{
			Severity: logging.Info,
			Payload:  "Cover uploaded",
			Labels: map[string]string{
				"publicId": result.PublicId,
				"url":      result.Url,
				"bytes":    strconv.FormatInt(coverFile.Size, 10),
			},
		})

		c.JSON(http.StatusOK, result)
	}
}

func removeTempFile(logger logs.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log(logging.Entry{
			Severity: logging.Warning,
			Payload:  "Error removing temp file",
			Labels:   map[string]string{"error": err.Error(), "path": path},
		})
	}
}
