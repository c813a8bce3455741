package email

import (
	"fmt"
	"log/slog"
	"mime"
	"net/smtp"

	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/internal/notifications/config"
	"github.com/Novip1906/join/pkg/logging"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailSenderService struct {
	smtpConfig *config.SMTP
	boardURL   string
	log        *slog.Logger
	sendMail   sendMailFunc
}

func NewEmailSender(smtpCfg *config.SMTP, boardURL string, log *slog.Logger) *EmailSenderService {
	return &EmailSenderService{smtpConfig: smtpCfg, boardURL: boardURL, log: log, sendMail: smtp.SendMail}
}

// SendTaskEmail tells an assignee about a task they were put on.
func (s *EmailSenderService) SendTaskEmail(msg models.EventMessage) error {
	if msg.Email == "" {
		return ErrNoRecipient
	}

	subject := fmt.Sprintf("New task for you: %s", msg.TaskTitle)
	if msg.Type == models.EventTaskAssigned {
		subject = fmt.Sprintf("You were assigned to: %s", msg.TaskTitle)
	}

	body, err := s.renderTaskTemplate(msg)
	if err != nil {
		s.log.Error("task template render error", logging.Err(err))
		return ErrRenderTemplate
	}

	return s.sendEmail(msg.Email, subject, body)
}

func (s *EmailSenderService) sendEmail(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.smtpConfig.Email, s.smtpConfig.Password, s.smtpConfig.Host)

	msg := []byte(
		"From: " + s.smtpConfig.Email + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n" +
			"MIME-version: 1.0;\r\n" +
			"Content-Type: text/html; charset=\"UTF-8\";\r\n" +
			"\r\n" + body,
	)

	addr := fmt.Sprintf("%s:%d", s.smtpConfig.Host, s.smtpConfig.Port)
	return s.sendMail(addr, auth, s.smtpConfig.Email, []string{to}, msg)
}
