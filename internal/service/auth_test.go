package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/core/auth"
	"taskdeck/internal/domain"
	"taskdeck/pkg/utils"
)

func newAuthService() (*AuthService, *fakeUserRepo, *auth.JWTer) {
	repo := newFakeUserRepo()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "taskdeck"}
	return NewAuthService(repo, jwter), repo, jwter
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, repo, jwter := newAuthService()

	tok, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := jwter.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)

	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, claims.UserID, u.ID)
	// 密码只存哈希
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.True(t, utils.CheckPassword("s3cret", u.PasswordHash))
}

func TestRegisterValidation(t *testing.T) {
	svc, repo, _ := newAuthService()

	_, err := svc.Register(context.Background(), "", "", "")
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 3)
	assert.Empty(t, repo.users)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Alice", "alice@example.com", "different")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	// 只留下一条用户记录
	assert.Len(t, repo.users, 1)
}

func TestLogin(t *testing.T) {
	svc, _, jwter := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	tok, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	claims, err := jwter.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	// 再接近也不行
	_, err = svc.Login(ctx, "alice@example.com", "s3cret ")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func registeredIdentity(t *testing.T, svc *AuthService, repo *fakeUserRepo, name, email, pw string) domain.Identity {
	t.Helper()
	_, err := svc.Register(context.Background(), name, email, pw)
	require.NoError(t, err)
	u, err := repo.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, u)
	return domain.Identity{UserID: u.ID, Name: u.Name, Email: u.Email}
}

func TestResetNoUpdates(t *testing.T) {
	svc, repo, _ := newAuthService()
	ident := registeredIdentity(t, svc, repo, "Alice", "alice@example.com", "s3cret")

	err := svc.Reset(context.Background(), ident, ResetInput{
		NewName:  "Alice", // 与当前相同
		NewEmail: "alice@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrNoUpdates)
}

func TestResetSamePassword(t *testing.T) {
	svc, repo, _ := newAuthService()
	ident := registeredIdentity(t, svc, repo, "Alice", "alice@example.com", "s3cret")

	err := svc.Reset(context.Background(), ident, ResetInput{
		CurrentPassword: "s3cret",
		NewPassword:     "s3cret",
	})
	assert.ErrorIs(t, err, domain.ErrSamePassword)
}

func TestResetWrongCurrentPassword(t *testing.T) {
	svc, repo, _ := newAuthService()
	ident := registeredIdentity(t, svc, repo, "Alice", "alice@example.com", "s3cret")

	err := svc.Reset(context.Background(), ident, ResetInput{
		CurrentPassword: "wrong",
		NewPassword:     "brand-new",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// 旧密码仍然有效
	_, err = svc.Login(context.Background(), "alice@example.com", "s3cret")
	assert.NoError(t, err)
}

func TestResetAppliesAllFields(t *testing.T) {
	svc, repo, _ := newAuthService()
	ident := registeredIdentity(t, svc, repo, "Alice", "alice@example.com", "s3cret")

	err := svc.Reset(context.Background(), ident, ResetInput{
		NewName:         "Alicia",
		NewEmail:        "alicia@example.com",
		CurrentPassword: "s3cret",
		NewPassword:     "n3w-s3cret",
	})
	require.NoError(t, err)

	u, err := repo.FindByID(context.Background(), ident.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", u.Name)
	assert.Equal(t, "alicia@example.com", u.Email)

	_, err = svc.Login(context.Background(), "alicia@example.com", "n3w-s3cret")
	assert.NoError(t, err)
}

func TestResetEmailTakenStillAppliesEarlierFields(t *testing.T) {
	svc, repo, _ := newAuthService()
	ident := registeredIdentity(t, svc, repo, "Alice", "alice@example.com", "s3cret")
	registeredIdentity(t, svc, repo, "Bob", "bob@example.com", "s3cret")

	// 邮箱被拒绝，但之前累积的名字变更仍落库
	err := svc.Reset(context.Background(), ident, ResetInput{
		NewName:  "Alicia",
		NewEmail: "bob@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	u, ferr := repo.FindByID(context.Background(), ident.UserID)
	require.NoError(t, ferr)
	assert.Equal(t, "Alicia", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
}
