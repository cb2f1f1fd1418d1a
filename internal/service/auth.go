package service

import (
	"context"
	"strings"

	"taskdeck/internal/core/auth"
	"taskdeck/internal/domain"
	"taskdeck/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	ve := domain.NewValidationError()
	if name == "" {
		ve.Add("name", "name is required")
	}
	if email == "" {
		ve.Add("email", "email is required")
	}
	if password == "" {
		ve.Add("password", "password is required")
	}
	if !ve.Empty() {
		return "", ve
	}

	// 先查后建只是给出友好错误，真正的唯一性由 email 唯一索引兜底
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", domain.ErrDuplicateEmail
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	return s.jwter.Issue(u.ID, u.Name, u.Email)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", domain.ErrInvalidCredentials
	}
	// 只通过 bcrypt 比较，绝不做明文对比
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}
	return s.jwter.Issue(u.ID, u.Name, u.Email)
}

type ResetInput struct {
	NewName         string
	NewEmail        string
	CurrentPassword string
	NewPassword     string
}

// Reset 按 名字 → 邮箱 → 密码 的顺序逐项评估，累积有效变更，最后统一保存一次。
// 某一项被拒绝时，之前已累积的变更仍会先落库再返回错误。
func (s *AuthService) Reset(ctx context.Context, ident domain.Identity, in ResetInput) error {
	u, err := s.users.FindByEmail(ctx, ident.Email)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}

	changed := false
	savePartial := func() error {
		if !changed {
			return nil
		}
		return s.users.Update(ctx, u)
	}

	if in.NewName != "" && in.NewName != u.Name {
		u.Name = in.NewName
		changed = true
	}

	if in.NewEmail != "" && in.NewEmail != u.Email {
		other, err := s.users.FindByEmail(ctx, in.NewEmail)
		if err != nil {
			return err
		}
		if other != nil {
			if serr := savePartial(); serr != nil {
				return serr
			}
			return domain.ErrDuplicateEmail
		}
		u.Email = in.NewEmail
		changed = true
	}

	if in.NewPassword != "" {
		if !utils.CheckPassword(in.CurrentPassword, u.PasswordHash) {
			if serr := savePartial(); serr != nil {
				return serr
			}
			return domain.ErrInvalidCredentials
		}
		if utils.CheckPassword(in.NewPassword, u.PasswordHash) {
			if serr := savePartial(); serr != nil {
				return serr
			}
			return domain.ErrSamePassword
		}
		hash, err := utils.HashPassword(in.NewPassword)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
		changed = true
	}

	if !changed {
		return domain.ErrNoUpdates
	}
	return s.users.Update(ctx, u)
}
