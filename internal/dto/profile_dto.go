package dto

// UpdateProfileRequest is a partial update; nil fields are left unchanged.
type UpdateProfileRequest struct {
	FullName             *string `json:"full_name"`
	BankLast4            *string `json:"bank_last4"`
	PayoutMethod         *string `json:"payout_method"`
	NotifyReportApproved *bool   `json:"notify_report_approved"`
	NotifyReportRejected *bool   `json:"notify_report_rejected"`
	NotifyPayoutSent     *bool   `json:"notify_payout_sent"`
	NotifyWeeklyDigest   *bool   `json:"notify_weekly_digest"`
}
