package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"prodflow/internal/domain"
)

type Service struct {
	users   UserRepository
	jwt     TokenIssuer
	avatars AvatarStore
}

func NewService(users UserRepository, jwt TokenIssuer, avatars AvatarStore) *Service {
	return &Service{users: users, jwt: jwt, avatars: avatars}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	role := domain.UserRole(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issueToken(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	fields := map[string]any{}

	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		taken, err := s.users.EmailTakenByOther(ctx, req.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		fields["email"] = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Role != "" {
		if !domain.UserRole(req.Role).Valid() {
			return nil, ErrInvalidRole
		}
		fields["role"] = req.Role
	}

	if len(fields) > 0 {
		if err := s.users.Update(ctx, userID, fields); err != nil {
			return nil, err
		}
	}

	return s.Me(ctx, userID)
}

var avatarExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

// UploadAvatar stores the image and records its path on the user profile.
func (s *Service) UploadAvatar(ctx context.Context, userID int64, filename string, content io.Reader) (*domain.User, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !avatarExts[ext] {
		return nil, ErrInvalidAvatar
	}

	path, err := s.avatars.Save(ctx, "avatars", filename, content)
	if err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}

	if err := s.users.Update(ctx, userID, map[string]any{"avatar_url": path}); err != nil {
		return nil, err
	}

	return s.Me(ctx, userID)
}

func (s *Service) issueToken(user *domain.User) (*TokenResponse, error) {
	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}
