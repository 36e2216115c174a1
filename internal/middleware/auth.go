package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mtakagi/task-manager-api/internal/auth"
	"github.com/mtakagi/task-manager-api/internal/constants"
	apierrors "github.com/mtakagi/task-manager-api/internal/errors"
	"github.com/mtakagi/task-manager-api/internal/models"
	"github.com/mtakagi/task-manager-api/internal/repository"
	"gorm.io/gorm"
)

// RequireAuth resolves the bearer token on the request to a persisted user.
// Every failure class (missing header, bad scheme, malformed token, bad
// signature, expiry, unknown subject) is answered with the same 401 so the
// response does not reveal which check failed. The token error kind is
// still logged for operators.
func RequireAuth(tokens *auth.TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c)
			return
		}

		subject, err := tokens.Verify(tokenString)
		if err != nil {
			log.Printf("Token rejected: %v", err)
			unauthorized(c)
			return
		}

		user, err := users.FindByUsername(subject)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("User lookup failed: %v", err)
			}
			unauthorized(c)
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
// The Bearer scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	apierrors.Unauthorized(c, "Could not validate credentials")
	c.Abort()
}

// CurrentUser retrieves the resolved user from the request context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}
