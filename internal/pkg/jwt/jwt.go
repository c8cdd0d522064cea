package jwt

import (
	"context"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Identity is the caller described by a verified access token.
type Identity struct {
	UserID      string
	WorkspaceID string
	Role        auth.Role
}

type Service interface {
	// GenerateAccessToken signs a token in the format the API accepts. Tokens
	// are normally issued by the identity provider; this exists for tooling
	// and tests.
	GenerateAccessToken(id Identity) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(id Identity) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		"user_id": id.UserID,
		"role":    string(id.Role),
		"type":    "access",
		"exp":     expiresAt,
	}
	if id.WorkspaceID != "" {
		claims["workspace_id"] = id.WorkspaceID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// IdentityFromContext reads the claims stored by jwtauth.Verifier.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return Identity{}, auth.ErrMissingSubject
	}
	role, _ := claims["role"].(string)
	workspaceID, _ := claims["workspace_id"].(string)

	return Identity{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Role:        auth.Role(role),
	}, nil
}
