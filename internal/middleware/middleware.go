package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"railbird/internal/access"
	"railbird/internal/cache"
	"railbird/internal/models"
	"railbird/internal/repository"

	"github.com/gin-gonic/gin"
)

// Ctx key and helpers for the authenticated caller
// Using unexported type to avoid collisions

type ctxKey string

const callerKey ctxKey = "caller"

func ContextWithCaller(ctx context.Context, caller *models.Player) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

func CallerFromContext(ctx context.Context) (*models.Player, bool) {
	caller, ok := ctx.Value(callerKey).(*models.Player)
	return caller, ok
}

// Caller returns the authenticated player from a gin context.
func Caller(c *gin.Context) (*models.Player, bool) {
	v, exists := c.Get("caller")
	if !exists {
		return nil, false
	}
	caller, ok := v.(*models.Player)
	return caller, ok
}

// CORS handles cross-origin requests from the presentation layer
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// Logger emits a structured log line for failed requests
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}

		if caller, ok := Caller(c); ok {
			logFields = append(logFields, "player_id", caller.PlayerID)
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			slog.Error("Request completed with error", logFields...)
		}
	}
}

// Recovery recovers from panics with detailed logging
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}

// BasicAuth authenticates the caller with HTTP Basic Auth, checking the
// Valkey credential cache before the database. The resolved player row
// (roles included) rides on the request so access checks stay explicit.
func BasicAuth(playerRepo *repository.PlayerRepository, valkeyClient *cache.ValkeyClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", "Basic realm=\"Restricted\"")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx := c.Request.Context()

		hash := sha256.Sum256([]byte(password))
		passwordHash := fmt.Sprintf("%x", hash)

		if valkeyClient != nil {
			if player, err := valkeyClient.GetPlayerByAuth(ctx, email, passwordHash); err == nil {
				attachCaller(c, player)
				c.Next()
				return
			}
		}

		player, err := playerRepo.GetByEmail(ctx, email)
		if err != nil || player == nil || !player.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if player.PasswordHash == "" || passwordHash != player.PasswordHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if valkeyClient != nil {
			if err := valkeyClient.SetPlayerAuth(ctx, email, passwordHash, player); err != nil {
				slog.Warn("Failed to cache credentials", "error", err)
			}
		}

		attachCaller(c, player)
		c.Next()
	}
}

func attachCaller(c *gin.Context, player *models.Player) {
	c.Set("caller", player)
	c.Request = c.Request.WithContext(ContextWithCaller(c.Request.Context(), player))
}

// RequireStaff rejects callers whose role set does not classify as floor
// staff. Must run after BasicAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := Caller(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !access.IsStaff(caller.Roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Floor staff only"})
			return
		}

		c.Next()
	}
}
