package domain

import (
	"time"
)

type Role string

const (
	// 企业招聘方，唯一会通过注册页面产生的角色
	RoleRecruiter Role = "BUSINESS-RECRUITER"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CompanyName  string    `json:"companyName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
