package notification

import (
	"fmt"

	"motoclub/config"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers booking confirmations over SMTP.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailSender returns nil when SMTP credentials are not configured;
// callers treat a nil sender as a disabled channel.
func NewEmailSender() *EmailSender {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" {
		return nil
	}
	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &EmailSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   from,
	}
}

func (e *EmailSender) Send(msg BookingMessage) error {
	if msg.Email == "" {
		return fmt.Errorf("booking %s has no email address", msg.BookingID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", msg.Email)
	m.SetHeader("Subject", fmt.Sprintf("Booking confirmed: %s", msg.OfferingTitle))
	m.SetBody("text/html", confirmationBody(msg))

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

// SendOTP mails a verification code to a freshly registered member.
func (e *EmailSender) SendOTP(email, name, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Verify your email")
	m.SetBody("text/html", fmt.Sprintf(
		`<p>Hi %s,</p><p>Your verification code is <b>%s</b>. It expires in 5 minutes.</p>`,
		name, otp,
	))
	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}

func confirmationBody(msg BookingMessage) string {
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>Your booking for <b>%s</b> is confirmed.</p>
<ul>
  <li>Booking reference: %s</li>
  <li>Seats: %d</li>
  <li>Amount paid: ₹%.2f</li>
</ul>
<p>See you on the road!</p>`,
		msg.Name, msg.OfferingTitle, msg.BookingID, msg.Seats, msg.Amount)
}
