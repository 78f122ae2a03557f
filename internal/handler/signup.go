package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "company-index", nil)
}

func (h *Handler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "company-signup", nil)
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := h.readForm(r); err != nil {
		h.render(w, r, http.StatusOK, "company-signup", map[string]any{
			"ErrorMsg": "请填写所有必填字段",
		})
		return
	}

	req := struct {
		Username    string `validate:"required"`
		Password    string `validate:"required"`
		CompanyName string `validate:"required"`
		Email       string `validate:"omitempty,email"`
	}{
		Username:    r.PostFormValue("username"),
		Password:    r.PostFormValue("password"),
		CompanyName: r.PostFormValue("name"),
		Email:       r.PostFormValue("email"),
	}

	if err := h.validate.Struct(req); err != nil {
		h.render(w, r, http.StatusOK, "company-signup", map[string]any{
			"ErrorMsg": h.formError(err),
		})
		return
	}

	// 先按用户名查一次。查询和插入之间仍可能有并发注册，
	// 所以插入时还要兜住唯一约束错误，两道防线缺一不可
	if _, err := h.users.GetUserByUsername(req.Username); err == nil {
		h.render(w, r, http.StatusOK, "company-signup", map[string]any{
			"ErrorMsg": "该用户名已被注册。",
		})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		CompanyName:  req.CompanyName,
		Email:        req.Email,
		Role:         domain.RoleRecruiter,
	}

	if err := h.users.CreateUser(user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_username_key":
			h.render(w, r, http.StatusOK, "company-signup", map[string]any{
				"ErrorMsg": "该用户名已被注册。",
			})
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 留了邮箱的账户发送一封欢迎邮件，发送失败不影响注册结果
	if user.Email != "" {
		mailMessage := domain.MailMessage{
			Type: "welcome",
			To:   user.Email,
			Data: domain.WelcomeMailData{
				CompanyName: user.CompanyName,
				Username:    user.Username,
			},
		}
		if err := h.publisher.Publish(r.Context(), mailMessage); err != nil {
			slog.Warn("欢迎邮件入队失败", "username", user.Username, "error", err)
		}
	}

	http.Redirect(w, r, "/company/login", http.StatusSeeOther)
}
