package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var companyNamePrefixes = []string{
	"华宇", "蓝鲸", "星河", "云帆", "远景", "中科", "启明", "天工", "锐思", "恒达",
	"博睿", "嘉和", "晨曦", "四方", "凌云", "鼎盛", "海纳", "青藤", "朗月", "飞跃",
}
var companyNameSuffixes = []string{
	"科技", "网络", "信息", "软件", "数据", "智能", "传媒", "咨询",
}

func GenerateRandomCompanyName() string {
	prefix := companyNamePrefixes[rand.Intn(len(companyNamePrefixes))]
	suffix := companyNameSuffixes[rand.Intn(len(companyNameSuffixes))]
	return prefix + suffix + "有限公司"
}

var digits = "0123456789"

// GenerateUsernameFromChineseName 把中文名称转成拼音用户名并附加随机数字，
// 以降低种子数据之间的用户名冲突概率
func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, p := range pinyinArray {
		length := rand.Intn(len(p)) + 1
		username += p[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomRecruiter(password string) (*domain.User, error) {
	companyName := GenerateRandomCompanyName()
	username := GenerateUsernameFromChineseName(companyName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		CompanyName:  companyName,
		Email:        username + "@example.com",
		Role:         domain.RoleRecruiter,
	}

	return user, nil
}

var offerTitles = []string{
	"后端开发工程师", "前端开发工程师", "数据分析师", "产品经理", "测试工程师",
	"运维工程师", "算法工程师", "UI 设计师",
}
var offerLocations = []string{
	"广州", "深圳", "北京", "上海", "杭州", "成都", "远程",
}
var offerStudies = []string{
	"计算机科学", "软件工程", "信息管理", "设计学", "不限专业",
}
var offerStyles = []string{
	"全职", "兼职", "实习",
}

func GenerateRandomOffer(company *domain.User) *domain.Offer {
	title := offerTitles[rand.Intn(len(offerTitles))]

	return &domain.Offer{
		Title:        title,
		Location:     offerLocations[rand.Intn(len(offerLocations))],
		Study:        offerStudies[rand.Intn(len(offerStudies))],
		Style:        offerStyles[rand.Intn(len(offerStyles))],
		Description:  fmt.Sprintf("%s招聘%s，欢迎投递简历。", company.CompanyName, title),
		ContactName:  company.CompanyName,
		ContactEmail: company.Email,
		CompanyID:    company.ID,
	}
}
