package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	FirstName string `json:"firstName"`
	Username  string `json:"username"`
}

type ResetPasswordMailData struct {
	FirstName  string `json:"firstName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"` // minutes shown in the mail
}
