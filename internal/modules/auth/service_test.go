package auth

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"prodflow/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 42
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockUserRepository) EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error) {
	args := m.Called(ctx, email, userID)
	return args.Bool(0), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

type MockAvatarStore struct {
	mock.Mock
}

func (m *MockAvatarStore) Save(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, dir, filename, r)
	return args.String(0), args.Error(1)
}

func TestService_Register_Success(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, tokens, new(MockAvatarStore))

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "dana@example.com" && u.Role == domain.RoleDesigner && u.PasswordHash != "secret123"
	})).Return(nil)
	tokens.On("GenerateToken", int64(42), "designer").Return("token-abc", nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  Dana@Example.com ",
		Password: "secret123",
		Name:     "Dana",
		Role:     "designer",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Empty(t, resp.User.PasswordHash)
}

func TestService_Register_InvalidRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockTokenIssuer), new(MockAvatarStore))

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "x@example.com", Password: "secret123", Name: "X", Role: "accountant",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
	users.AssertNotCalled(t, "Create")
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockTokenIssuer), new(MockAvatarStore))

	users.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "dup@example.com", Password: "secret123", Name: "Dup", Role: "warehouse",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Login_Success(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, tokens, new(MockAvatarStore))

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "dana@example.com").Return(&domain.User{
		ID: 42, Email: "dana@example.com", PasswordHash: string(hash), Role: domain.RoleDesigner,
	}, nil)
	tokens.On("GenerateToken", int64(42), "designer").Return("token-abc", nil)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "dana@example.com", Password: "secret123"})

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", resp.AccessToken)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockTokenIssuer), new(MockAvatarStore))

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "dana@example.com").Return(&domain.User{
		ID: 42, PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "dana@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockTokenIssuer), new(MockAvatarStore))

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_UpdateProfile_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockTokenIssuer), new(MockAvatarStore))

	users.On("EmailTakenByOther", mock.Anything, "taken@example.com", int64(42)).Return(true, nil)

	_, err := svc.UpdateProfile(context.Background(), 42, UpdateProfileRequest{Email: "taken@example.com"})

	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Update")
}

func TestService_UploadAvatar_Success(t *testing.T) {
	users := new(MockUserRepository)
	avatars := new(MockAvatarStore)
	svc := NewService(users, new(MockTokenIssuer), avatars)

	avatars.On("Save", mock.Anything, "avatars", "me.png", mock.Anything).
		Return("uploads/avatars/me.png", nil)
	users.On("Update", mock.Anything, int64(42), map[string]any{
		"avatar_url": "uploads/avatars/me.png",
	}).Return(nil)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{
		ID: 42, Email: "dana@example.com", AvatarURL: "uploads/avatars/me.png",
	}, nil)

	user, err := svc.UploadAvatar(context.Background(), 42, "me.png", strings.NewReader("png-bytes"))

	assert.NoError(t, err)
	assert.Equal(t, "uploads/avatars/me.png", user.AvatarURL)
	avatars.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestService_UploadAvatar_RejectsNonImage(t *testing.T) {
	users := new(MockUserRepository)
	avatars := new(MockAvatarStore)
	svc := NewService(users, new(MockTokenIssuer), avatars)

	_, err := svc.UploadAvatar(context.Background(), 42, "report.pdf", strings.NewReader("x"))

	assert.ErrorIs(t, err, ErrInvalidAvatar)
	avatars.AssertNotCalled(t, "Save")
	users.AssertNotCalled(t, "Update")
}
