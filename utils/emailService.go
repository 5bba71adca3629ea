package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"tradegate/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: TradeGate <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all engine notifications
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>TRADEGATE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 TradeGate. All rights reserved.<br>
				Trading involves risk. Please read all documents carefully.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendGuardianApprovalRequestEmail notifies a guardian that a minor is
// waiting on their sign-off
func SendGuardianApprovalRequestEmail(guardianEmail, guardianName, minorName, permissionName string) {
	subject := "Approval Requested: " + permissionName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p><strong>%s</strong> has requested access to <strong>%s</strong> on TradeGate.</p>
		<p>Because they are a minor, this capability needs your approval before it can be granted.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Log in to your guardian dashboard to approve or deny this request.
		</div>
	`, guardianName, minorName, permissionName)

	go SendEmail([]string{guardianEmail}, subject, getEmailTemplate("Guardian Approval Needed", body))
}

// SendGuardianDecisionEmail tells the minor how their request was decided
func SendGuardianDecisionEmail(minorEmail, minorName, permissionName string, approved bool) {
	verdict := "approved"
	title := "Request Approved"
	if !approved {
		verdict = "denied"
		title = "Request Denied"
	}

	subject := fmt.Sprintf("Your request for %s was %s", permissionName, verdict)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your guardian has <strong>%s</strong> your request for <strong>%s</strong>.</p>
		<p>You can review your eligibility checklist on your dashboard at any time.</p>
	`, minorName, verdict, permissionName)

	go SendEmail([]string{minorEmail}, subject, getEmailTemplate(title, body))
}

// SendPermissionGrantedEmail congratulates a user on an earned permission
func SendPermissionGrantedEmail(email, name, permissionName string) {
	subject := "New Capability Unlocked: " + permissionName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have unlocked <strong>%s</strong>.</p>
		<p>It is now active on your account, no further action needed.</p>
	`, name, permissionName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Capability Unlocked", body))
}
