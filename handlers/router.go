package handlers

import (
	"coverpost_api/clients"
	"coverpost_api/middlewares"
	"coverpost_api/types"
	"coverpost_api/views"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with every route of the service
func NewRouter(app *clients.App) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), middlewares.RecoveryMiddleware(app.Logger))

	// Disable TrustedProxies feature
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	templates, err := views.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(templates)

	// The gateway parses its own body and accepts every method so it can
	// reject the wrong ones itself
	r.Any(types.UPLOAD_API_PATH, UploadHandler(app.Logger, app.Uploader))

	pages := r.Group("")
	pages.Use(middlewares.SessionMiddleware(app.Logger, app.Sessions))
	pages.GET("/", HomePageHandler(app.Logger))
	pages.POST("/posts", CreatePostHandler(app.Logger, app.Gateway, app.Sessions))
	pages.GET("/api/posts", GetPostsHandler(app.Logger))

	return r, nil
}
