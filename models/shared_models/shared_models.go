package shared_models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rideon/rental/utils"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

const (
	AccessTokenExpiry  = time.Hour * 24
	RefreshTokenExpiry = time.Hour * 24 * 30
)

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is what the middleware hands to handlers after validation.
type TokenClaims struct {
	UserID int64
	Role   string
	JTI    string
}

// GenerateAccessToken mints a short-lived access token carrying the
// user's role. The role claim is what route guards branch on.
func GenerateAccessToken(userID int64, role string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": role,
		"type": "access",
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(utils.GetJWTSecret())
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// GenerateRefreshToken mints a refresh token with an embedded jti so it
// can be tracked and revoked server-side.
func GenerateRefreshToken(userID int64, duration time.Duration) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"type": "refresh",
		"jti":  jti,
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(utils.GetJWTRefreshSecret())
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, jti, nil
}

// ValidateAccessToken parses and validates an access token, returning
// the resolved caller identity and role.
func ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	return validateToken(tokenString, "access", utils.GetJWTSecret())
}

// ValidateRefreshToken parses and validates a refresh token.
func ValidateRefreshToken(tokenString string) (*TokenClaims, error) {
	return validateToken(tokenString, "refresh", utils.GetJWTRefreshSecret())
}

func validateToken(tokenString, wantType string, secret []byte) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if typ, _ := claims["type"].(string); typ != wantType {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	out := &TokenClaims{UserID: userID}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}
	if jti, ok := claims["jti"].(string); ok {
		out.JTI = jti
	}
	return out, nil
}
