package mail

import (
	"log"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends best-effort outbound email over SMTP. When credentials are not
// configured every send is silently skipped.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// New creates a mailer. Leaving user or password empty disables sending.
func New(host string, port int, user, password, from string) *Mailer {
	if from == "" {
		from = user
	}
	return &Mailer{host: host, port: port, user: user, password: password, from: from}
}

// Enabled reports whether SMTP credentials are configured.
func (m *Mailer) Enabled() bool {
	return m.user != "" && m.password != ""
}

// Send delivers an HTML email. Returns false when sending was skipped or
// failed; the caller is expected to treat that as a soft condition.
func (m *Mailer) Send(to, subject, html string) bool {
	if !m.Enabled() {
		log.Println("email not configured, skipping send")
		return false
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Printf("email send error: %v", err)
		return false
	}
	return true
}
