// utils/auth.go
package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"rebeauty-backend/config"
	"rebeauty-backend/models"
)

const identityKey = "currentUser"

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken issues a signed HS256 token for a staff account. The subject
// claim carries the staff id; expiry comes from the config.
func GenerateToken(cfg *config.Config, staff *models.Staff) (string, error) {
	if cfg.SecretKey == "" {
		return "", errors.New("SECRET_KEY not set")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(staff.ID), 10),
		"email": staff.Email,
		"role":  "staff",
		"exp":   now.Add(time.Duration(cfg.TokenExpireMinutes) * time.Minute).Unix(),
		"iat":   now.Unix(),
	})
	return token.SignedString([]byte(cfg.SecretKey))
}

// ParseToken verifies the signature and expiry and returns the staff id from
// the subject claim.
func ParseToken(cfg *config.Config, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return 0, errors.New("missing subject claim")
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, errors.New("malformed subject claim")
	}
	return uint(id), nil
}

// IdentityResolver turns a bearer token into an Identity. Implemented by the
// auth service; the middleware only depends on this interface.
type IdentityResolver interface {
	ResolveUser(token string) (*models.Identity, error)
	ResolveOptionalUser(token string) *models.Identity
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// resolved identity in the request context.
func AuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authorization header required"})
			return
		}
		identity, err := resolver.ResolveUser(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves an identity when a valid token is supplied
// and silently continues without one otherwise. Used only by the staff
// bootstrap route, where a decode failure must not block the action.
func OptionalAuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if identity := resolver.ResolveOptionalUser(token); identity != nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by the auth middleware, or nil.
func CurrentIdentity(c *gin.Context) *models.Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := v.(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.ToUpper(header[0:6]) == "BEARER" {
		return header[7:]
	}
	return header
}
