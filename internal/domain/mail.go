package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateStaffMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type BulkExceptionMailData struct {
	FullName     string `json:"fullName"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	CreatedCount int    `json:"createdCount"`
	FailedCount  int    `json:"failedCount"`
}
