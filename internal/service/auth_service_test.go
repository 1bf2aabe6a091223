package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
)

type mockUserRepo struct {
	users   map[string]models.User
	findErr error
	creates int
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if u, ok := m.users[username]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.users == nil {
		m.users = make(map[string]models.User)
	}
	m.creates++
	user.ID = int64(m.creates)
	m.users[user.Username] = *user
	return nil
}

func newTestAuthService(repo *mockUserRepo) *AuthService {
	svc := NewAuthService(repo, nil, zap.NewNop())
	svc.cost = bcrypt.MinCost
	return svc
}

func TestAuthServiceEnsureDefaultUserOnce(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestAuthService(repo)

	created, err := svc.EnsureDefaultUser(context.Background(), "Ricardo", "R1c@rd0")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureDefaultUser(context.Background(), "Ricardo", "R1c@rd0")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, repo.creates)
	assert.NotEqual(t, "R1c@rd0", repo.users["Ricardo"].PasswordHash)
}

func TestAuthServiceLogin(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestAuthService(repo)
	_, err := svc.EnsureDefaultUser(context.Background(), "Ricardo", "R1c@rd0")
	require.NoError(t, err)

	require.NoError(t, svc.Login(context.Background(), models.LoginRequest{Username: "Ricardo", Password: "R1c@rd0"}))

	rejected := []models.LoginRequest{
		{Username: "Ricardo", Password: "wrong"},
		{Username: "ricardo", Password: "R1c@rd0"},
		{Username: "nobody", Password: "R1c@rd0"},
		{Username: "", Password: ""},
	}
	for _, req := range rejected {
		err := svc.Login(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, appErrors.Status(err), req.Username)
	}
}

func TestAuthServiceLoginStoreFailure(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{findErr: errors.New("database is locked")})

	err := svc.Login(context.Background(), models.LoginRequest{Username: "Ricardo", Password: "R1c@rd0"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.Status(err))
}
