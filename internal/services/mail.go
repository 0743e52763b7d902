package services

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendWelcomeEmail notifies a newly registered employee. It is best-effort:
// without an API key configured it does nothing.
func SendWelcomeEmail(toEmail, employeeName, companyName string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil
	}

	from := mail.NewEmail(companyName, os.Getenv("MAIL_FROM"))
	subject := fmt.Sprintf("You've been registered as an employee of %s", companyName)
	to := mail.NewEmail(employeeName, toEmail)

	htmlContent := fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h1 style="color: #2c3e50;">Welcome aboard, %s!</h1>
			<p>You've been registered as an employee of <strong>%s</strong> on its device tracker.</p>
			<p>Devices checked out under your name will show up in the company's device logs.</p>
			<p>Best regards,<br>%s</p>
		</div>
        `, employeeName, companyName, companyName)

	plainTextContent := fmt.Sprintf("Welcome %s! You've been registered as an employee of %s on its device tracker.", employeeName, companyName)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(apiKey)
	_, err := client.Send(message)
	if err != nil {
		return err
	}
	return nil
}
