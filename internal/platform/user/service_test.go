package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekazakova/moneta/pkg/logger"
)

type mockRepo struct {
	users   map[uuid.UUID]*User
	byEmail map[string]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		users:   make(map[uuid.UUID]*User),
		byEmail: make(map[string]*User),
	}
}

func (m *mockRepo) Create(_ context.Context, u *User) error {
	if _, exists := m.byEmail[u.Email]; exists {
		return ErrUserAlreadyExists
	}
	m.users[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return ErrUserNotFound
	}
	m.users[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockRepo) Exists(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, logger.NewDefault("test")), repo
}

func TestService_Register(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Register(context.Background(), "anna@example.com", "s3cretpass", "Anna", "Petrova")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "anna@example.com", u.Email)
	assert.Equal(t, "Anna", u.FirstName)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "s3cretpass", u.PasswordHash)
	assert.Len(t, repo.users, 1)
}

func TestService_Register_Errors(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"invalid email", "not-an-email", "s3cretpass", ErrInvalidEmail},
		{"empty email", "", "s3cretpass", ErrInvalidEmail},
		{"short password", "anna@example.com", "short", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			_, err := svc.Register(context.Background(), tt.email, tt.password, "Anna", "Petrova")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "anna@example.com", "s3cretpass", "Anna", "Petrova")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "anna@example.com", "otherpass1", "Other", "Anna")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestService_Login(t *testing.T) {
	svc, _ := newTestService()

	registered, err := svc.Register(context.Background(), "anna@example.com", "s3cretpass", "Anna", "Petrova")
	require.NoError(t, err)
	require.Nil(t, registered.LastLoginAt)

	u, err := svc.Login(context.Background(), "anna@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.NotNil(t, u.LastLoginAt)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "anna@example.com", "s3cretpass", "Anna", "Petrova")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "anna@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	// Unknown accounts must be indistinguishable from wrong passwords
	_, err := svc.Login(context.Background(), "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}
