package handlers

import (
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/config"
	"github.com/gofiber/fiber/v2"
)

const legalStyle = `<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>`

type LegalHandler struct {
	appName string
}

func NewLegalHandler(cfg *config.Config) *LegalHandler {
	return &LegalHandler{appName: cfg.AppName}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - ` + h.appName + `</title>
` + legalStyle + `
</head><body>
<h1>Privacy Policy</h1>
<p>Last updated: October 2026</p>
<h2>Information We Collect</h2>
<p>We collect your email address, your name, and the payout details you choose to share (the last four digits of a bank account and a payout method). When you file a report we store the photo you upload, its location, the time, and the license plate you entered.</p>
<h2>Who Can See Your Reports</h2>
<p>Reports, photos, and earnings are visible only to you and to the reviewers who approve or reject them. Other users can never read your reports.</p>
<h2>How We Use Your Information</h2>
<p>Your data is used to operate ` + h.appName + `, review reported violations, and pay out rewards for approved reports.</p>
<h2>Account Deletion</h2>
<p>Deleting your account removes your profile, every report you filed, and your sign-in sessions.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us at privacy@curbwatch.app</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - ` + h.appName + `</title>
` + legalStyle + `
</head><body>
<h1>Terms of Service</h1>
<p>Last updated: October 2026</p>
<h2>Acceptance</h2>
<p>By using ` + h.appName + `, you agree to these terms.</p>
<h2>Reporting</h2>
<p>Only report violations you witnessed in person. Photos must show the vehicle and the violation. Do not photograph people's faces or private property beyond what the report requires.</p>
<h2>Rewards</h2>
<p>Each report earns 10% of the listed fine for its violation type, fixed when the report is submitted. Rewards are paid only for approved reports. Duplicate or false reports are rejected and may lead to account suspension.</p>
<h2>Termination</h2>
<p>We may suspend or terminate accounts that violate these terms.</p>
<h2>Contact</h2>
<p>For questions, contact us at support@curbwatch.app</p>
</body></html>`)
}
