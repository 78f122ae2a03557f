// Package auth 提供可插拔的凭证校验策略。
package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials 对外不区分用户不存在和密码错误
var ErrInvalidCredentials = errors.New("用户名不存在或密码错误")

// CredentialVerifier 校验一组凭证，成功时返回对应的用户
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*domain.User, error)
}

// BcryptVerifier 基于用户表中的 bcrypt 哈希做本地校验
type BcryptVerifier struct {
	users repository.UserStore
}

func NewBcryptVerifier(users repository.UserStore) *BcryptVerifier {
	return &BcryptVerifier{users: users}
}

func (v *BcryptVerifier) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := v.users.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}

	return user, nil
}
