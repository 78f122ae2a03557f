package domain

import (
	"time"
)

// Offer 是企业发布的招聘职位。CompanyID 在创建时写入，之后不允许变更，
// 编辑操作对其余七个字段做整体覆盖（最后写入者生效，没有版本字段）。
type Offer struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	Study        string    `json:"study"`
	Style        string    `json:"style"`
	Description  string    `json:"description"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	CompanyID    int64     `json:"companyId"`
	CreatedAt    time.Time `json:"createdAt"`
}
