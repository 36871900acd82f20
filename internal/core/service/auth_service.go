package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zerotrace/smart-facility/internal/api/metrics"
	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// Unknown emails are compared against dummyHash so a miss costs the same
// bcrypt round as a wrong password.
var (
	compareHash = bcrypt.CompareHashAndPassword
	dummyHash   = sync.OnceValue(func() []byte {
		h, _ := bcrypt.GenerateFromPassword([]byte("facility-unknown-account"), bcrypt.DefaultCost)
		return h
	})
)

// AuthService implements registration, login and token sessions.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	tx        ports.TxManager
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionStore,
	tx ports.TxManager,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		tx:        tx,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates an enabled, unlocked account. An empty role means MEMBER.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.Validationf("email and password are required")
	}
	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return nil, domain.Validationf("unknown role %q", input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(input.FullName),
		Role:         role,
		Enabled:      true,
		Locked:       false,
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrUserExists
		}
		return s.users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return user, nil
}

// Login checks the credentials and issues a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrBadCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = compareHash(dummyHash(), []byte(password))
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if compareHash([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrBadCredentials
	}
	if !user.CanLogin() {
		metrics.LoginsTotal.WithLabelValues("disabled").Inc()
		return nil, domain.ErrAccountLocked
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := s.generateToken(user, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Uint("user_id", user.ID).Msg("user logged in")
	return &ports.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims ports.Claims) error {
	if claims.TokenID == "" {
		return domain.ErrInvalidToken
	}
	if err := s.sessions.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.logger.Info().Uint("user_id", claims.UserID).Msg("user logged out")
	return nil
}

func (s *AuthService) Verify(ctx context.Context, token string) (*ports.Claims, error) {
	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, err := claimsFromMap(mc)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) generateToken(user *domain.User, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"role":  string(user.Role),
		"jti":   uuid.NewString(),
		"exp":   expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func claimsFromMap(mc jwt.MapClaims) (*ports.Claims, error) {
	sub, err := mc.GetSubject()
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, err
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("missing exp")
	}
	role, _ := mc["role"].(string)
	email, _ := mc["email"].(string)
	jti, _ := mc["jti"].(string)
	if jti == "" || !domain.Role(role).Valid() {
		return nil, errors.New("incomplete claims")
	}
	return &ports.Claims{
		UserID:    uint(id),
		Email:     email,
		Role:      domain.Role(role),
		TokenID:   jti,
		ExpiresAt: exp.Time,
	}, nil
}
