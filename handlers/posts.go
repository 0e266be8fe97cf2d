package handlers

import (
	"errors"
	"net/http"

	"coverpost_api/clients"
	"coverpost_api/logs"
	"coverpost_api/middlewares"
	"coverpost_api/posts"
	"coverpost_api/types"
	"coverpost_api/views"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
)

func HomePageHandler(logger logs.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderHomePage(c, http.StatusOK, middlewares.PostsFromContext(c), "")
	}
}

// CreatePostHandler forwards the submitted form to the upload gateway and,
// once the cover is hosted, adds the post to the session's list.
// Nothing is validated: empty fields and a missing file go through as is.
func CreatePostHandler(logger logs.Logger, gateway clients.UploadGateway, sessions *posts.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		list := middlewares.PostsFromContext(c)

		title := c.PostForm(types.POST_FORM_FIELD_TITLE)
		content := c.PostForm(types.POST_FORM_FIELD_CONTENT)

		submission := clients.CoverSubmission{
			Title:   title,
			Content: content,
		}

		if header, err := c.FormFile(types.UPLOAD_FILE_FIELD); err == nil {
			file, err := header.Open()
			if err != nil {
				logger.Log(logging.Entry{
					Severity: logging.Error,
					Payload:  "Error opening submitted cover",
					Labels:   map[string]string{"error": err.Error()},
				})
				renderHomePage(c, http.StatusInternalServerError, list, "Could not read the cover file")
				return
			}
			defer file.Close()

			submission.Cover = file
			submission.CoverFilename = header.Filename
		}

		result, err := gateway.UploadCover(c.Request.Context(), submission)
		if err != nil {
			logger.Log(logging.Entry{
				Severity: logging.Error,
				Payload:  "Error uploading cover through the gateway",
				Labels:   map[string]string{"error": err.Error()},
			})

			status := http.StatusBadGateway
			var gatewayErr *clients.GatewayError
			if errors.As(err, &gatewayErr) && gatewayErr.StatusCode < http.StatusInternalServerError {
				status = http.StatusBadRequest
			}
			renderHomePage(c, status, list, "Could not create the post: "+err.Error())
			return
		}

		post := sessions.Get(middlewares.SessionIdFromContext(c)).Append(types.PostDraft{
			Title:   title,
			Content: content,
			Image:   result.ImageRef(),
		})

		logger.Log(logging.Entry{
			Severity: logging.Info,
			Payload:  "Post created",
			Labels:   map[string]string{"postId": post.Id, "url": post.Image.Url},
		})

		c.Redirect(http.StatusSeeOther, "/")
	}
}

func GetPostsHandler(logger logs.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"posts": middlewares.PostsFromContext(c).Posts(),
		})
	}
}

func renderHomePage(c *gin.Context, status int, list *posts.List, errorMessage string) {
	c.HTML(status, views.INDEX_TEMPLATE, gin.H{
		"Posts": list.Posts(),
		"Error": errorMessage,
	})
}
