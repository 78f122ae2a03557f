package repository

import (
	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
)

// handler 依赖下面两个接口而不是 *Repository，方便在测试中替换成内存实现。

type UserStore interface {
	GetUserByUsername(username string) (*domain.User, error)
	GetUserByID(id int64) (*domain.User, error)
	CreateUser(user *domain.User) error
}

type OfferStore interface {
	CreateOffer(offer *domain.Offer) error
	GetOffersByCompany(companyID int64) ([]*domain.Offer, error)
	GetOfferByID(id int64) (*domain.Offer, error)
	UpdateOffer(offer *domain.Offer) error
	DeleteOffer(id int64) error
}
