package email

import (
	"log"

	"gopkg.in/gomail.v2"
)

// Sender delivers mail over SMTP via gomail.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSender(host string, port int, username, password, from string) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *Sender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// LogSender writes mail to the process log instead of sending it. Used when
// SMTP is not configured (development).
type LogSender struct{}

func (LogSender) Send(to, subject, body string) error {
	log.Printf("[Email] to=%s subject=%q\n%s", to, subject, body)
	return nil
}
