package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/patch"
	"github.com/Kerhoff/storehouse/internal/repository"
	"github.com/Kerhoff/storehouse/internal/testutil"
	"github.com/Kerhoff/storehouse/pkg/logger"
)

func newTestService(t *testing.T) (*Service, *testutil.Memory, *testutil.Notifier) {
	t.Helper()

	mem := testutil.NewMemory()
	notifier := &testutil.Notifier{}
	svc := New(logger.Discard(), Repositories{
		Users:          mem.Users,
		Communications: mem.Communications,
	}, notifier, AuthConfig{
		Secret:    "test-secret",
		Algorithm: "HS256",
		TokenTTL:  30 * time.Minute,
	})
	return svc, mem, notifier
}

func register(t *testing.T, svc *Service, email string) *models.User {
	t.Helper()

	user, err := svc.Register(context.Background(), Registration{
		Email:    email,
		Password: "s3cret-pass",
		FullName: "Sam Volunteer",
		Role:     models.RolePackingVolunteer,
	})
	require.NoError(t, err)
	return user
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	user := register(t, svc, "sam@example.org")

	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.HashedPassword)
	assert.NotEmpty(t, user.HashedPassword)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, mem, _ := newTestService(t)

	first := register(t, svc, "sam@example.org")

	_, err := svc.Register(context.Background(), Registration{
		Email:    "sam@example.org",
		Password: "another",
		FullName: "Impostor",
		Role:     models.RoleDriver,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	stored, err := mem.Users.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sam Volunteer", stored.FullName)
	assert.Equal(t, models.RolePackingVolunteer, stored.Role)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	svc, mem, _ := newTestService(t)

	_, err := svc.Register(context.Background(), Registration{
		Email:    "sam@example.org",
		Password: strings.Repeat("a", MaxPasswordBytes+1),
		FullName: "Sam Volunteer",
		Role:     models.RoleDriver,
	})
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = mem.Users.GetByEmail(context.Background(), "sam@example.org")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogin_TokenResolvesToSameAccount(t *testing.T) {
	svc, _, _ := newTestService(t)
	user := register(t, svc, "sam@example.org")

	token, err := svc.Login(context.Background(), "sam@example.org", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)

	resolved, err := svc.Authenticate(context.Background(), token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	register(t, svc, "sam@example.org")

	_, err := svc.Login(context.Background(), "sam@example.org", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.org", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	register(t, svc, "sam@example.org")

	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := svc.IssueToken("sam@example.org")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Authenticate(context.Background(), token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_RejectsOtherAlgorithm(t *testing.T) {
	svc, _, _ := newTestService(t)
	register(t, svc, "sam@example.org")

	claims := jwt.RegisteredClaims{
		Subject:   "sam@example.org",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_MalformedToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	svc, mem, _ := newTestService(t)
	user := register(t, svc, "sam@example.org")

	token, err := svc.IssueToken(user.Email)
	require.NoError(t, err)

	_, err = mem.Users.Update(context.Background(), user.ID, repository.UserPatch{
		IsActive: patch.Of(false),
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token.AccessToken)
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestAuthenticate_DeletedAccount(t *testing.T) {
	svc, _, _ := newTestService(t)

	token, err := svc.IssueToken("ghost@example.org")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSendCommunication(t *testing.T) {
	svc, mem, notifier := newTestService(t)
	ctx := context.Background()

	c, err := mem.Communications.Create(ctx, &models.Communication{
		Subject:       "Packing on Saturday",
		Message:       "Doors open at 9",
		RecipientType: "volunteers",
		CreatedBy:     1,
	})
	require.NoError(t, err)

	sent, err := svc.SendCommunication(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, sent.IsSent())
	assert.Equal(t, []int64{c.ID}, notifier.Sent())

	_, err = svc.SendCommunication(ctx, c.ID)
	assert.ErrorIs(t, err, ErrAlreadySent)
	assert.Len(t, notifier.Sent(), 1)
}

func TestSendCommunication_NotifierFailureLeavesUnsent(t *testing.T) {
	svc, mem, notifier := newTestService(t)
	ctx := context.Background()
	notifier.Err = errors.New("telegram unavailable")

	c, err := mem.Communications.Create(ctx, &models.Communication{
		Subject: "Hello", Message: "World", RecipientType: "all", CreatedBy: 1,
	})
	require.NoError(t, err)

	_, err = svc.SendCommunication(ctx, c.ID)
	require.Error(t, err)

	stored, err := mem.Communications.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsSent())
}

func TestSendCommunication_Missing(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SendCommunication(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
