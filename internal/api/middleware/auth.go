package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-marketplace-mirror/internal/api/shared/errors"
	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/logger"
	"github.com/feral-file/ff-marketplace-mirror/internal/reconciler"
)

const (
	AUTH_USER_ID_KEY = "auth_user_id"
	JWT_CLAIMS_KEY   = "jwt_claims"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	Issuer       string // optional, checked when set
}

// Authenticator validates bearer tokens issued by the marketplace backend.
// The token subject carries the numeric user id.
type Authenticator struct {
	publicKey *rsa.PublicKey
	issuer    string
}

// NewAuthenticator parses the configured public key once
func NewAuthenticator(cfg AuthConfig) (*Authenticator, error) {
	if cfg.JWTPublicKey == "" {
		return nil, errors.New("JWT public key not configured")
	}

	publicKey, err := parseRSAPublicKey(cfg.JWTPublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}

	return &Authenticator{publicKey: publicKey, issuer: cfg.Issuer}, nil
}

// Authenticate validates the Authorization header and returns the caller's user id
func (a *Authenticator) Authenticate(authHeader string) (uint64, *jwt.RegisteredClaims, error) {
	if authHeader == "" {
		return 0, nil, errors.New("missing Authorization header")
	}

	scheme, credentials, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return 0, nil, errors.New("invalid Authorization header format")
	}

	claims, err := a.validateJWT(strings.TrimSpace(credentials))
	if err != nil {
		return 0, nil, err
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, nil, fmt.Errorf("invalid token subject: %q", claims.Subject)
	}

	return userID, claims, nil
}

// Auth returns a gin middleware that requires a valid bearer token
func Auth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, claims, err := a.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			logger.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.ErrorResponse{
				Error: apierrors.NewUnauthorizedError("Authentication failed", err.Error()),
			})
			return
		}

		c.Set(AUTH_USER_ID_KEY, userID)
		c.Set(JWT_CLAIMS_KEY, claims)
		logger.Debug("JWT authentication successful",
			zap.String("path", c.Request.URL.Path),
			zap.Uint64("user_id", userID),
		)

		c.Next()
	}
}

// RequireRole returns a gin middleware that only lets users with the given role through.
// It must run after Auth.
func RequireRole(identities reconciler.IdentityResolver, role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.ErrorResponse{
				Error: apierrors.NewUnauthorizedError("Authentication required"),
			})
			return
		}

		identity, err := identities.ResolveIdentity(c.Request.Context(), userID)
		if err != nil {
			status, apiErr := apierrors.FromDomainError(err)
			if status == http.StatusInternalServerError {
				logger.ErrorCtx(c.Request.Context(), err, zap.Uint64("user_id", userID))
			}
			c.AbortWithStatusJSON(status, apierrors.ErrorResponse{Error: apiErr})
			return
		}

		if identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, apierrors.ErrorResponse{
				Error: apierrors.NewForbiddenError(fmt.Sprintf("%s role required", role)),
			})
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth
func UserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(AUTH_USER_ID_KEY)
	if !ok {
		return 0, false
	}
	userID, ok := v.(uint64)
	return userID, ok
}

// validateJWT validates a JWT token with RSA signature and returns claims
func (a *Authenticator) validateJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.publicKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
