package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	CompanyName string `json:"companyName"`
	Username    string `json:"username"`
}
