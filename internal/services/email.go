package services

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
)

type EmailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		user:     os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASS"),
		from:     os.Getenv("EMAIL_FROM"),
	}
}

func (s *EmailService) SendEmail(to []string, subject, body string) error {
	if s.host == "" || s.port == "" || s.user == "" || s.password == "" {
		return fmt.Errorf("SMTP credentials not fully configured")
	}

	auth := smtp.PlainAuth("", s.user, s.password, s.host)

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", to[0], subject, body))

	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	err := smtp.SendMail(addr, auth, s.from, to, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendBookingCreated notifies a tenant that their booking was recorded
// and the commission payment is awaiting settlement.
func (s *EmailService) SendBookingCreated(tenant models.User, booking models.Booking, house models.House) error {
	if tenant.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("Booking request received for %s", house.Title)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking for %s (move-in %s) was recorded.\n"+
			"A commission fee of %s XOF is due to confirm it. You can pay from your bookings page.\n",
		tenant.Name, house.Title, booking.MoveInDate.Format("2006-01-02"), FormatAmount(booking.CommissionFee))
	return s.SendEmail([]string{tenant.Email}, subject, body)
}

// SendMoveInReminder reminds a tenant of an approved booking starting soon.
func (s *EmailService) SendMoveInReminder(tenant models.User, booking models.Booking, house models.House) error {
	if tenant.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("Move-in reminder: %s", house.Title)
	body := fmt.Sprintf(
		"Hello %s,\n\nA reminder that your stay at %s starts on %s.\n",
		tenant.Name, house.Title, booking.MoveInDate.Format("2006-01-02"))
	return s.SendEmail([]string{tenant.Email}, subject, body)
}
