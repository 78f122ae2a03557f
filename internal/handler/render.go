package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readForm(r *http.Request) error {
	return r.ParseForm()
}

// render 渲染指定视图。模板先写入缓冲区，避免渲染失败时输出半个页面
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, view string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}

	buf := &bytes.Buffer{}
	if err := h.views.ExecuteTemplate(buf, view, data); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "服务器内部错误", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		h.logInternalServerError(r, err)
	}
}

// formError 把校验错误转换成适合展示在表单上的中文提示
func (h *Handler) formError(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	return validationErrors[0].Translate(h.translator)
}

func (h *Handler) errorPage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render(w, r, status, "error", map[string]any{
		"ErrorMsg": msg,
	})
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.errorPage(w, r, http.StatusInternalServerError, "服务器内部错误，请稍后再试")
}
