package mailer

import (
	"bytes"
	"html/template"
	"strings"
)

// AppointmentDetails carries the fields rendered into a confirmation email.
// All fields are free-form strings; Comments may be empty.
type AppointmentDetails struct {
	ClientName  string
	Date        string
	Time        string
	BarberName  string
	ServiceName string
	Comments    string
}

// confirmationTmpl is the HTML body for appointment confirmations. All field
// values are auto-escaped by html/template, so client-supplied text cannot
// inject markup into the rendered message.
var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #2c3e50;">Hello {{.Details.ClientName}}!</h2>
  <p style="font-size: 18px; color: #27ae60;">Your appointment has been confirmed.</p>
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <h3 style="color: #2c3e50; margin-top: 0;">Appointment details</h3>
    <p><strong>Date:</strong> {{.Details.Date}}</p>
    <p><strong>Time:</strong> {{.Details.Time}}</p>
    <p><strong>Barber:</strong> {{.Details.BarberName}}</p>
    <p><strong>Service:</strong> {{.Details.ServiceName}}</p>
{{- if .Details.Comments}}
    <p><strong>Comments:</strong> {{.Details.Comments}}</p>
{{- end}}
  </div>
  <p style="font-size: 16px; color: #2c3e50;">We look forward to seeing you at {{.ShopName}}.</p>
  <p>Best regards,<br>The {{.ShopName}} team</p>
</div>
</body>
</html>
`))

// buildConfirmationHTML renders the HTML confirmation body.
func buildConfirmationHTML(shopName string, d AppointmentDetails) (string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		ShopName string
		Details  AppointmentDetails
	}{shopName, d})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildConfirmationText renders the plain-text confirmation body. Values are
// kept literal; escaping only applies to the HTML variant.
func buildConfirmationText(shopName string, d AppointmentDetails) string {
	var b strings.Builder
	b.WriteString("Hello " + d.ClientName + "!\n\n")
	b.WriteString("Your appointment has been confirmed.\n\n")
	b.WriteString("Appointment details:\n")
	b.WriteString("Date: " + d.Date + "\n")
	b.WriteString("Time: " + d.Time + "\n")
	b.WriteString("Barber: " + d.BarberName + "\n")
	b.WriteString("Service: " + d.ServiceName + "\n")
	if strings.TrimSpace(d.Comments) != "" {
		b.WriteString("Comments: " + d.Comments + "\n")
	}
	b.WriteString("\nWe look forward to seeing you at " + shopName + ".\n\n")
	b.WriteString("Best regards,\nThe " + shopName + " team")
	return b.String()
}
