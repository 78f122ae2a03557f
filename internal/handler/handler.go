package handler

import (
	"html/template"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/auth"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/mailer"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/repository"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/session"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	users      repository.UserStore
	offers     repository.OfferStore
	sessions   session.Store
	verifier   auth.CredentialVerifier
	publisher  mailer.Publisher
	translator ut.Translator
	views      *template.Template

	Mux *chi.Mux
}

func NewHandler(
	cfg *config.Config,
	users repository.UserStore,
	offers repository.OfferStore,
	sessions session.Store,
	verifier auth.CredentialVerifier,
	publisher mailer.Publisher,
) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	// 视图模板在启动时解析一次
	views, err := template.ParseGlob(filepath.Join(cfg.Templates.WebDir, "*.html"))
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		users:      users,
		offers:     offers,
		sessions:   sessions,
		verifier:   verifier,
		publisher:  publisher,
		translator: trans,
		views:      views,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/company", func(r chi.Router) {
		// 公开区域
		r.Get("/", h.Index)
		r.Get("/signup", h.ShowSignup)
		r.Post("/signup", h.Signup)
		r.Get("/login", h.ShowLogin)
		r.Post("/login", h.Login)

		// 以下路由必须在登录后才允许访问
		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)
			r.Get("/logout", h.Logout)

			// 企业私有区域，仅限招聘方角色
			r.Route("/private-company", func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleRecruiter}))
				r.Use(h.companyInfo)
				r.Get("/", h.ListOffers)
				r.Post("/", h.CreateOffer)
				r.With(h.offerFromQuery).With(h.requireOfferOwner).Get("/delete", h.DeleteOffer)
				r.With(h.offerFromQuery).With(h.requireOfferOwner).Get("/edit", h.ShowEditOffer)
				r.With(h.offerFromQuery).With(h.requireOfferOwner).Post("/edit", h.UpdateOffer)
			})
		})
	})
}
