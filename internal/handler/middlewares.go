package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"time"

	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/session"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireSession 校验登录态：cookie 中的令牌签名有效，且服务端会话记录仍然存在。
// 校验失败时渲染登录页并附带拒绝信息，不会继续执行后续 handler
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.render(w, r, http.StatusOK, "company-login", map[string]any{
					"ErrorMsg": "访问被拒绝，请登录后再访问该区域。",
				})
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		claims, err := h.parseSessionToken(cookie.Value)
		if err != nil {
			h.render(w, r, http.StatusOK, "company-login", map[string]any{
				"ErrorMsg": "访问被拒绝，请登录后再访问该区域。",
			})
			return
		}

		// 令牌签名有效还不够，服务端记录被删除（登出）后同样视为未登录
		sess, err := h.sessions.Get(r.Context(), claims.ID)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrNotFound):
				h.render(w, r, http.StatusOK, "company-login", map[string]any{
					"ErrorMsg": "访问被拒绝，请登录后再访问该区域。",
				})
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), SessionCtxKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := r.Context().Value(SessionCtxKey).(*session.Session)
			if !slices.Contains(roles, sess.Role) {
				h.render(w, r, http.StatusOK, "company-login", map[string]any{
					"ErrorMsg": "访问被拒绝，没有权限查看该区域，请联系网站管理员。",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) companyInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := r.Context().Value(SessionCtxKey).(*session.Session)

		company, err := h.users.GetUserByID(sess.UserID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorPage(w, r, http.StatusNotFound, "企业账户不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), CompanyCtxKey, company)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) offerFromQuery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offerIDParam := r.URL.Query().Get("id")
		offerID, err := strconv.ParseInt(offerIDParam, 10, 64)
		if err != nil {
			h.errorPage(w, r, http.StatusBadRequest, "职位ID无效")
			return
		}

		offer, err := h.offers.GetOfferByID(offerID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorPage(w, r, http.StatusNotFound, "职位不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), OfferCtxKey, offer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireOfferOwner 禁止操作不属于当前登录企业的职位
func (h *Handler) requireOfferOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := r.Context().Value(SessionCtxKey).(*session.Session)
		offer := r.Context().Value(OfferCtxKey).(*domain.Offer)

		if offer.CompanyID != sess.UserID {
			h.errorPage(w, r, http.StatusForbidden, "访问被拒绝，无法操作其他企业发布的职位")
			return
		}
		next.ServeHTTP(w, r)
	})
}
