// Package session 维护登录态：会话记录保存在服务端（redis），
// 客户端 cookie 中只携带指向记录的令牌。
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
)

// ErrNotFound 表示会话不存在或已过期
var ErrNotFound = errors.New("会话不存在")

type Session struct {
	ID          string      `json:"id"`
	UserID      int64       `json:"userId"`
	Username    string      `json:"username"`
	CompanyName string      `json:"companyName"`
	Role        domain.Role `json:"role"`
}

type Store interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// NewSession 为登录成功的用户生成一条新的会话记录
func NewSession(user *domain.User) *Session {
	return &Session{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Username:    user.Username,
		CompanyName: user.CompanyName,
		Role:        user.Role,
	}
}
