package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"brokerkit/internal/db"
	"brokerkit/internal/models"
	"brokerkit/internal/utils"
	"brokerkit/internal/utils/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

var log = logger.New("auth_middleware")

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret}
}

// Middleware requires a valid bearer token backed by a live session.
func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}
			return m.validateJWT(c, token, next)
		}
	}
}

// OptionalMiddleware resolves the viewer when a token is present but
// lets anonymous requests through. Used on the member-facing weekly
// plan so favorites can be decorated without requiring login.
func (m *AuthMiddleware) OptionalMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}
			token, err := bearerToken(c)
			if err != nil {
				// a malformed header on an optional route is
				// treated as anonymous
				return next(c)
			}
			if err := m.resolveViewer(c, token); err != nil {
				return next(c)
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
	}
	return tokenParts[1], nil
}

func (m *AuthMiddleware) validateJWT(c echo.Context, tokenString string, next echo.HandlerFunc) error {
	if err := m.resolveViewer(c, tokenString); err != nil {
		return err
	}
	return next(c)
}

// parseClaims verifies the token signature against the configured
// secret.
func (m *AuthMiddleware) parseClaims(tokenString string) (*utils.Claims, error) {
	claims := &utils.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

// resolveViewer verifies the token, its session row, and the member,
// then stashes identity in the request context.
func (m *AuthMiddleware) resolveViewer(c echo.Context, tokenString string) error {
	claims, err := m.parseClaims(tokenString)
	if err != nil {
		_ = log.Error("Error parsing JWT token", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token has expired")
	}

	// Verify the session was not revoked
	session := &models.AuthSession{}
	if err := db.DB.Where("member_id = ? AND token = ?", claims.MemberID, tokenString).First(session).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Session not found")
	}

	member := &models.Member{}
	if err := db.DB.Where("id = ? AND is_deleted = false", claims.MemberID).First(member).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Member not found")
	}

	c.Set("memberID", member.ID)
	c.Set("email", member.Email)
	c.Set("role", string(member.Role))
	c.Set("region", member.Region)

	return nil
}

// GetMemberID returns the authenticated member id, or "" when
// anonymous.
func GetMemberID(c echo.Context) string {
	if id, ok := c.Get("memberID").(string); ok {
		return id
	}
	return ""
}

func GetMemberRole(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok {
		return role
	}
	return ""
}

func GetMemberRegion(c echo.Context) string {
	if region, ok := c.Get("region").(string); ok {
		return region
	}
	return ""
}
