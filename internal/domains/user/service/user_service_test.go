package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/user/model"
	"storefront-backend/pkg/jwt"
)

// =====================================================
// MOCK REPOSITORY
// =====================================================

type mockUserRepo struct {
	byEmail map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: map[string]*model.User{}}
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return model.ErrEmailTaken
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	for _, u := range m.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

// =====================================================
// TESTS
// =====================================================

func newUserService(repo *mockUserRepo) UserService {
	return NewUserService(repo, jwt.NewManager("test-secret", time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := newUserService(repo)

	auth, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "Shopper@Example.com",
		Password: "correct-horse",
		FullName: "Sam Shopper",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.AccessToken)
	assert.Equal(t, model.RoleCustomer, auth.User.Role)
	// Email is normalized before storage
	assert.Equal(t, "shopper@example.com", auth.User.Email)

	// Password is stored hashed, never in the clear
	stored := repo.byEmail["shopper@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)

	// Login tolerates the same casing the user registered with
	login, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "Shopper@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := newUserService(repo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "shopper@example.com",
		Password: "correct-horse",
		FullName: "Sam Shopper",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "shopper@example.com",
		Password: "wrong-horse",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newUserService(newMockUserRepo())

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	// Indistinguishable from a wrong password
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newUserService(repo)

	req := &model.RegisterRequest{
		Email:    "shopper@example.com",
		Password: "correct-horse",
		FullName: "Sam Shopper",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)

	var usrErr *model.UserError
	require.ErrorAs(t, err, &usrErr)
	assert.Equal(t, model.ErrCodeEmailTaken, usrErr.Code)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newUserService(newMockUserRepo())

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "shopper@example.com",
		Password: "short",
		FullName: "Sam Shopper",
	})
	require.Error(t, err)

	var usrErr *model.UserError
	require.ErrorAs(t, err, &usrErr)
	assert.Equal(t, model.ErrCodeInvalidUser, usrErr.Code)
}
