package middlewares

import (
	"net/http"

	"coverpost_api/logs"
	"coverpost_api/posts"
	"coverpost_api/types"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Binds the request to the post list of its session, issuing a session
// cookie when the client has none. The list is only looked up here, a
// session is registered once it adds its first post.
func SessionMiddleware(logger logs.Logger, sessions *posts.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionId := extractSessionId(c)
		if sessionId == "" {
			sessionId = uuid.NewString()

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(types.SESSION_COOKIE_NAME, sessionId, 0, "/", "", false, true)

			logger.Log(logging.Entry{
				Severity: logging.Debug,
				Payload:  "New session started",
				Labels:   map[string]string{"route": c.Request.URL.Path},
			})
		}

		c.Set(types.CONTEXT_KEY_SESSION_ID, sessionId)
		c.Set(types.CONTEXT_KEY_POSTS, sessions.Peek(sessionId))
		c.Next()
	}
}

// Extracts the session id from the session cookie.
// Anything that is not a UUID is ignored.
func extractSessionId(c *gin.Context) string {
	candidate, err := c.Cookie(types.SESSION_COOKIE_NAME)
	if err != nil {
		return ""
	}

	if _, err := uuid.Parse(candidate); err != nil {
		return ""
	}
	return candidate
}

func SessionIdFromContext(c *gin.Context) string {
	return c.GetString(types.CONTEXT_KEY_SESSION_ID)
}

func PostsFromContext(c *gin.Context) *posts.List {
	value, exists := c.Get(types.CONTEXT_KEY_POSTS)
	if !exists {
		return nil
	}
	list, _ := value.(*posts.List)
	return list
}
