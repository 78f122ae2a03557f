package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/auth"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/session"
)

const sessionCookieName = "__job_board_session"

// AuthClaims 的 ID（jti）指向 redis 中的会话记录
type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) signSessionToken(sess *session.Session, expiration time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(sess.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatInt(sess.UserID, 10),
		},
	})
	return token.SignedString([]byte(h.config.Session.Secret))
}

func (h *Handler) parseSessionToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.config.Session.Secret), nil
	}); err != nil {
		return nil, err
	}
	return claims, nil
}

func (h *Handler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "company-login", nil)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := h.readForm(r); err != nil {
		h.render(w, r, http.StatusOK, "company-login", map[string]any{
			"ErrorMsg": "请输入用户名和密码",
		})
		return
	}

	req := struct {
		Username string `validate:"required"`
		Password string `validate:"required"`
	}{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if err := h.validate.Struct(req); err != nil {
		h.render(w, r, http.StatusOK, "company-login", map[string]any{
			"ErrorMsg": "请输入用户名和密码",
		})
		return
	}

	// 凭证校验交给可替换的策略实现
	user, err := h.verifier.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.render(w, r, http.StatusOK, "company-login", map[string]any{
				"ErrorMsg": "用户名不存在或密码错误",
			})
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 在服务端建立会话记录
	sess := session.NewSession(user)
	if err := h.sessions.Create(r.Context(), sess); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	expiration := time.Now().Add(time.Duration(h.config.Session.Expiration) * time.Second)

	ss, err := h.signSessionToken(sess, expiration)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通过 http-only 的 cookie 返回给客户端
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	http.Redirect(w, r, "/company/private-company", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtxKey).(*session.Session)

	// 删除服务端会话记录，令牌随之失效
	if err := h.sessions.Delete(r.Context(), sess.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:    sessionCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	http.Redirect(w, r, "/company/login", http.StatusSeeOther)
}
