package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/example/sweetshop/pkg/apperr"
	"github.com/example/sweetshop/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userContextKey = "currentUser"

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// requireAuth validates the bearer token and stores the resolved user
// in the request context.
func (g *Gateway) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "access token required"})
			return
		}

		user, err := g.auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			g.respondError(c, err)
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func (g *Gateway) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Internal failures never leak detail to the client.
func (g *Gateway) respondError(c *gin.Context, err error) {
	if ae, ok := apperr.As(err); ok {
		body := gin.H{"message": ae.Message}
		for k, v := range ae.Details {
			body[k] = v
		}
		c.JSON(statusOf(ae.Kind), body)
		return
	}

	g.logger.Error("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
