package middlewares

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"coverpost_api/logs"
	"coverpost_api/tools"
	"coverpost_api/types"

	"github.com/gin-gonic/gin"
)

var ErrMissingCover = errors.New("no " + types.UPLOAD_FILE_FIELD + " file is received")

// Stream-parses the multipart body and spools the first cover file to a temp
// file. Sizes and types are not checked.
func CoverFileMiddleware(logger logs.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reader, err := c.Request.MultipartReader()
		if err != nil {
			tools.LogError(logger, c, http.StatusBadRequest, fmt.Errorf("failed to read the multipart form data: %w", err))
			return
		}

		coverFile, status, err := spoolCoverFile(reader)
		if err != nil {
			tools.LogError(logger, c, status, err)
			return
		}

		c.Set(types.CONTEXT_KEY_COVER_FILE, coverFile)
	}
}

func spoolCoverFile(reader *multipart.Reader) (*types.CoverFile, int, error) {
	var coverFile *types.CoverFile

	fail := func(status int, err error) (*types.CoverFile, int, error) {
		if coverFile != nil {
			os.Remove(coverFile.Path)
		}
		return nil, status, err
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(http.StatusBadRequest, fmt.Errorf("failed to parse the multipart form data: %w", err))
		}

		if coverFile == nil && part.FormName() == types.UPLOAD_FILE_FIELD && part.FileName() != "" {
			path, name, size, err := tools.SpoolToTempFile(part)
			if err != nil {
				part.Close()
				return fail(http.StatusInternalServerError, err)
			}

			coverFile = &types.CoverFile{
				Path:             path,
				NewFilename:      name,
				OriginalFilename: part.FileName(),
				ContentType:      part.Header.Get("Content-Type"),
				Size:             size,
			}
		}

		part.Close()
	}

	if coverFile == nil {
		return nil, http.StatusBadRequest, ErrMissingCover
	}

	return coverFile, http.StatusOK, nil
}

func CoverFileFromContext(c *gin.Context) (*types.CoverFile, bool) {
	value, exists := c.Get(types.CONTEXT_KEY_COVER_FILE)
	if !exists {
		return nil, false
	}
	coverFile, ok := value.(*types.CoverFile)
	return coverFile, ok
}
