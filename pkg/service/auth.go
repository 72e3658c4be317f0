package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/sweetshop/pkg/apperr"
	"github.com/example/sweetshop/pkg/config"
	"github.com/example/sweetshop/pkg/models"
	"github.com/example/sweetshop/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type AuthService struct {
	users  UserStore
	config *config.JWTConfig
	logger *zap.Logger
}

type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthResult pairs an issued token with the public user view.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

func NewAuthService(users UserStore, cfg *config.JWTConfig, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, config: cfg, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, username, email, password, role string) (*AuthResult, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperr.Validation("username, email, and password are required")
	}
	if len(password) < 6 {
		return nil, apperr.Validation("password must be at least 6 characters long")
	}

	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, apperr.Validation("invalid role")
	}

	_, err := s.users.FindByEmailOrUsername(ctx, email, username)
	if err == nil {
		return nil, apperr.Conflict("user with this email or username already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User registered",
		zap.String("username", username),
		zap.String("role", role))

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	// Same message for unknown user and wrong password, so a caller
	// cannot probe which addresses are registered.
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Auth("invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Auth("invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// ValidateToken parses and verifies a bearer token and resolves the
// user it names.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Auth("invalid or expired token").Wrap(err)
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperr.Auth("invalid or expired token").Wrap(err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Auth("user no longer exists")
	}
	if err != nil {
		return nil, fmt.Errorf("resolve token user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Stats(ctx context.Context) (*models.UserStats, error) {
	return s.users.Stats(ctx)
}

// EnsureAdmin seeds the bootstrap admin account at startup, repairing
// the password if it no longer matches the configured one.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg *config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	user, err := s.users.FindByEmail(ctx, cfg.Email)
	if errors.Is(err, repository.ErrNotFound) {
		hash, herr := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcryptCost)
		if herr != nil {
			return fmt.Errorf("hash admin password: %w", herr)
		}
		admin := &models.User{
			Username: cfg.Username,
			Email:    cfg.Email,
			Password: string(hash),
			Role:     models.RoleAdmin,
		}
		if err := s.users.Create(ctx, admin); err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}
		s.logger.Info("Default admin user created", zap.String("email", cfg.Email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup admin user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(cfg.Password)) != nil {
		hash, herr := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcryptCost)
		if herr != nil {
			return fmt.Errorf("hash admin password: %w", herr)
		}
		if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return fmt.Errorf("update admin password: %w", err)
		}
		s.logger.Info("Admin password updated", zap.String("email", cfg.Email))
	}
	return nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	expiry := time.Duration(s.config.ExpiryDays) * 24 * time.Hour
	claims := &Claims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
