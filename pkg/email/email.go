package email

import (
	"bytes"
	"fmt"
	"go-applicant-intake/config"
	"html/template"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
}

// ApplicationEmailData holds the data rendered into the notification email
type ApplicationEmailData struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Profession  string
	Address     string
	JobPosition string
	Education   []EducationRow
	Experience  []ExperienceRow
	Skills      string
	ResumeLink  string
	SubmittedAt string
}

type EducationRow struct {
	HighestEducation string
	FieldOfStudy     string
	Institute        string
}

type ExperienceRow struct {
	CompanyName       string
	PositionTitle     string
	YearsOfExperience float64
}

// Attachment is an optional file carried with the email, already in its
// portable base64 form.
type Attachment struct {
	Filename      string
	ContentBase64 string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		toEmail:   cfg.NotifyEmailTo,
	}
}

// applicationEmailTemplate is the HTML template for submission notifications
const applicationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Application Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 10px; }
        .label { font-weight: bold; color: #555; }
        table { border-collapse: collapse; width: 100%; margin: 10px 0; }
        th, td { border: 1px solid #ddd; padding: 6px; text-align: left; }
        th { background: #eef; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Application Submission</h1>
        </div>
        <div class="content">
            <div class="field"><span class="label">Name:</span> {{.FirstName}} {{.LastName}}</div>
            <div class="field"><span class="label">Email:</span> {{.Email}}</div>
            <div class="field"><span class="label">Phone:</span> {{.Phone}}</div>
            {{if .Profession}}<div class="field"><span class="label">Profession:</span> {{.Profession}}</div>{{end}}
            {{if .Address}}<div class="field"><span class="label">Address:</span> {{.Address}}</div>{{end}}
            {{if .JobPosition}}<div class="field"><span class="label">Position Applied For:</span> {{.JobPosition}}</div>{{end}}
            {{if .Education}}
            <div class="field"><span class="label">Education:</span></div>
            <table>
                <tr><th>Highest Education</th><th>Field of Study</th><th>Institute</th></tr>
                {{range .Education}}<tr><td>{{.HighestEducation}}</td><td>{{.FieldOfStudy}}</td><td>{{.Institute}}</td></tr>{{end}}
            </table>
            {{end}}
            {{if .Experience}}
            <div class="field"><span class="label">Experience:</span></div>
            <table>
                <tr><th>Company</th><th>Position</th><th>Years</th></tr>
                {{range .Experience}}<tr><td>{{.CompanyName}}</td><td>{{.PositionTitle}}</td><td>{{.YearsOfExperience}}</td></tr>{{end}}
            </table>
            {{end}}
            {{if .Skills}}<div class="field"><span class="label">Skills:</span> {{.Skills}}</div>{{end}}
            {{if .ResumeLink}}<div class="field"><span class="label">Resume:</span> <a href="{{.ResumeLink}}">{{.ResumeLink}}</a></div>{{end}}
        </div>
        <div class="footer">
            <p>Submitted at {{.SubmittedAt}}.</p>
        </div>
    </div>
</body>
</html>`

// RenderApplicationEmail produces the HTML body for a submission notification.
func RenderApplicationEmail(data ApplicationEmailData) (string, error) {
	tmpl, err := template.New("application").Parse(applicationEmailTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// SendApplicationEmail renders and sends the submission notification to the
// configured recipient, attaching the resume when one is present. Reply-To
// carries the applicant's own address.
func (s *EmailService) SendApplicationEmail(data ApplicationEmailData, att *Attachment) error {
	body, err := RenderApplicationEmail(data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("New Application Submission: %s %s", data.FirstName, data.LastName)

	msg, err := buildMessage(s.fromEmail, s.toEmail, data.Email, subject, body, att)
	if err != nil {
		return fmt.Errorf("failed to build email message: %w", err)
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildMessage constructs a multipart/mixed MIME message with an HTML part
// and an optional base64 attachment part.
func buildMessage(from, to, replyTo, subject, htmlBody string, att *Attachment) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	if replyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", mw.Boundary())
	buf.WriteString("\r\n")

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if att != nil {
		attPart, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {fmt.Sprintf("application/octet-stream; name=%q", att.Filename)},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", att.Filename)},
		})
		if err != nil {
			return nil, err
		}
		if _, err := attPart.Write(wrapBase64(att.ContentBase64)); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// wrapBase64 folds an encoded string into 76-character lines per RFC 2045.
func wrapBase64(encoded string) []byte {
	const lineLen = 76
	var out bytes.Buffer
	for len(encoded) > lineLen {
		out.WriteString(encoded[:lineLen])
		out.WriteString("\r\n")
		encoded = encoded[lineLen:]
	}
	out.WriteString(encoded)
	out.WriteString("\r\n")
	return out.Bytes()
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}
