package handler

type ContextKey string

var (
	SessionCtxKey ContextKey = "session"
	CompanyCtxKey ContextKey = "companyInfo"
	OfferCtxKey   ContextKey = "offer"
)
