package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/session"
)

type offerForm struct {
	Title        string `validate:"required"`
	Location     string `validate:"required"`
	Study        string `validate:"required"`
	Style        string `validate:"required"`
	Description  string `validate:"required"`
	ContactName  string
	ContactEmail string `validate:"required,email"`
}

func readOfferForm(r *http.Request) offerForm {
	return offerForm{
		Title:        r.PostFormValue("title"),
		Location:     r.PostFormValue("location"),
		Study:        r.PostFormValue("study"),
		Style:        r.PostFormValue("style"),
		Description:  r.PostFormValue("description"),
		ContactName:  r.PostFormValue("name"),
		ContactEmail: r.PostFormValue("email"),
	}
}

func (h *Handler) ListOffers(w http.ResponseWriter, r *http.Request) {
	company := r.Context().Value(CompanyCtxKey).(*domain.User)

	allOffers, err := h.offers.GetOffersByCompany(company.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "company-profile", map[string]any{
		"AllOffers": allOffers,
		"Company":   company,
	})
}

func (h *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtxKey).(*session.Session)
	company := r.Context().Value(CompanyCtxKey).(*domain.User)

	if err := h.readForm(r); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, "无法读取表单内容")
		return
	}

	form := readOfferForm(r)
	if err := h.validate.Struct(form); err != nil {
		// 校验失败时带着已有职位列表重新渲染私有区域
		allOffers, listErr := h.offers.GetOffersByCompany(company.ID)
		if listErr != nil {
			h.internalServerError(w, r, listErr)
			return
		}
		h.render(w, r, http.StatusOK, "company-profile", map[string]any{
			"AllOffers": allOffers,
			"Company":   company,
			"ErrorMsg":  "请填写创建职位所需的全部字段",
		})
		return
	}

	// 归属企业取自会话身份，不信任表单里提交的任何企业信息
	offer := &domain.Offer{
		Title:        form.Title,
		Location:     form.Location,
		Study:        form.Study,
		Style:        form.Style,
		Description:  form.Description,
		ContactName:  form.ContactName,
		ContactEmail: form.ContactEmail,
		CompanyID:    sess.UserID,
	}

	if err := h.offers.CreateOffer(offer); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	http.Redirect(w, r, "/company/private-company", http.StatusSeeOther)
}

func (h *Handler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	offer := r.Context().Value(OfferCtxKey).(*domain.Offer)

	if err := h.offers.DeleteOffer(offer.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	http.Redirect(w, r, "/company/private-company", http.StatusSeeOther)
}

func (h *Handler) ShowEditOffer(w http.ResponseWriter, r *http.Request) {
	offer := r.Context().Value(OfferCtxKey).(*domain.Offer)

	h.render(w, r, http.StatusOK, "company-edit", map[string]any{
		"EditOffer": offer,
	})
}

// UpdateOffer 用提交的内容整体覆盖职位的全部可编辑字段
func (h *Handler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	offer := r.Context().Value(OfferCtxKey).(*domain.Offer)

	if err := h.readForm(r); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, "无法读取表单内容")
		return
	}

	form := readOfferForm(r)
	if err := h.validate.Struct(form); err != nil {
		h.render(w, r, http.StatusOK, "company-edit", map[string]any{
			"EditOffer": offer,
			"ErrorMsg":  h.formError(err),
		})
		return
	}

	offer.Title = form.Title
	offer.Location = form.Location
	offer.Study = form.Study
	offer.Style = form.Style
	offer.Description = form.Description
	offer.ContactName = form.ContactName
	offer.ContactEmail = form.ContactEmail

	if err := h.offers.UpdateOffer(offer); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	http.Redirect(w, r, "/company/private-company", http.StatusSeeOther)
}
