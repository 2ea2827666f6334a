// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/onms-dev/crm-backend/internal/core"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserInfo is the directory record the auth service needs to check a
// login. Password is the stored credential as-is; comparison happens here.
type UserInfo struct {
	Username string
	Password string
	Role     string
}

// UserProvider resolves usernames against the user directory. Satisfied by
// the user service; wired in main.
type UserProvider interface {
	Lookup(ctx context.Context, username string) (*UserInfo, error)
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
}

func NewService(jwt *JWTManager, userProvider UserProvider) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
	}
}

// Login checks the credentials and mints an access token. Unknown username
// and wrong password both come back as ErrInvalidCredentials, and a dummy
// comparison runs on the unknown-username path so the two are not
// distinguishable by timing.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.userProvider.Lookup(ctx, req.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.ConstantTimeEquals(req.Password, "")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !core.ConstantTimeEquals(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	ttl := s.jwt.AccessTokenTTL()

	return &AuthResponse{
		User: UserResponse{
			Username: user.Username,
			Role:     user.Role,
		},
		Tokens: TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int(ttl / time.Second),
			ExpiresAt:   time.Now().Add(ttl),
		},
	}, nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	username string,
) (*UserResponse, error) {
	user, err := s.userProvider.Lookup(ctx, username)
	if err != nil {
		return nil, err
	}

	return &UserResponse{
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
