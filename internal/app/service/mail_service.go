package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"os"
	"path/filepath"

	apperrors "github.com/bancoriental/unipersonal-backend/internal/errors"

	"github.com/bancoriental/unipersonal-backend/config"
	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/internal/app/repository"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
)

// Archive keeps a copy of each rendered mail body. Optional; a nil
// archive disables archiving.
type Archive interface {
	Store(ctx context.Context, templateID, recipient, renderedBody string) (string, error)
}

// MailService renders and sends templated notifications.
type MailService interface {
	Send(ctx context.Context, notifications []model.Notification) error
}

type mailService struct {
	cfg     config.SMTPConfig
	audits  repository.AuditRepository
	archive Archive

	// sendMail is swappable in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailService(cfg config.SMTPConfig, audits repository.AuditRepository, archive Archive) MailService {
	return &mailService{
		cfg:      cfg,
		audits:   audits,
		archive:  archive,
		sendMail: smtp.SendMail,
	}
}

// Send processes the notifications in order. The first failure aborts
// the remaining items; there is no partial-failure aggregation.
func (s *mailService) Send(ctx context.Context, notifications []model.Notification) error {
	for i := range notifications {
		if err := s.sendOne(ctx, &notifications[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *mailService) sendOne(ctx context.Context, n *model.Notification) error {
	tmpl, err := s.loadTemplate(n.NotificationTypeID)
	if err != nil {
		return err
	}

	// Field validation applies only to the topes family, and happens
	// before any rendering.
	if n.IsTopesFamily() {
		for _, field := range []string{
			model.TopesFieldService,
			model.TopesFieldMaxAmount,
			model.TopesFieldMaxCount,
		} {
			if n.Data[field] == "" {
				return &apperrors.InvalidParameterError{Param: field}
			}
		}
	}

	body, err := renderBody(n.NotificationTypeID, tmpl.Body, n.Data)
	if err != nil {
		return apperrors.NewServiceError("failed to render mail template", err)
	}

	message, err := buildMessage(tmpl, n.User.Email, body, n.Attachments)
	if err != nil {
		return err
	}

	sendErr := s.deliver(tmpl.Sender, n.User.Email, message)
	if sendErr == nil && s.archive != nil {
		if _, err := s.archive.Store(ctx, n.NotificationTypeID, n.User.Email, body); err != nil {
			logger.Warn("Failed to archive notification", map[string]interface{}{
				"template": n.NotificationTypeID,
			})
		}
	}

	if err := s.auditSend(n, sendErr); err != nil {
		return err
	}

	if sendErr != nil {
		logger.Error("Failed to send notification", sendErr, map[string]interface{}{
			"template":  n.NotificationTypeID,
			"recipient": n.User.Email,
		})
		return apperrors.NewServiceError("failed to send notification", sendErr)
	}

	logger.Info("Notification sent", map[string]interface{}{
		"template":  n.NotificationTypeID,
		"recipient": n.User.Email,
	})
	return nil
}

// loadTemplate reads templates/{id}.json and, when the template asks for
// it, swaps the body for templates/html/{id}.html.
func (s *mailService) loadTemplate(id string) (*model.MailTemplate, error) {
	raw, err := os.ReadFile(filepath.Join(s.cfg.TemplateDir, id+".json"))
	if err != nil {
		return nil, apperrors.NewServiceError(
			fmt.Sprintf("failed to load mail template %s", id), err)
	}

	var tmpl model.MailTemplate
	if err := json.Unmarshal(raw, &tmpl); err != nil {
		return nil, apperrors.NewServiceError(
			fmt.Sprintf("failed to parse mail template %s", id), err)
	}

	if tmpl.UseHTMLTemplate {
		html, err := os.ReadFile(filepath.Join(s.cfg.TemplateDir, "html", id+".html"))
		if err != nil {
			return nil, apperrors.NewServiceError(
				fmt.Sprintf("failed to load html body for template %s", id), err)
		}
		tmpl.Body = string(html)
	}
	return &tmpl, nil
}

func renderBody(id, body string, data map[string]string) (string, error) {
	t, err := template.New(id).Parse(body)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildMessage assembles the MIME payload: an HTML part plus one base64
// part per attachment.
func buildMessage(tmpl *model.MailTemplate, recipient, body string, attachments []model.Attachment) ([]byte, error) {
	var buf bytes.Buffer
	boundary := "onboarding-mail-boundary"

	from := tmpl.Sender
	if tmpl.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", tmpl.SenderName), tmpl.Sender)
	}

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", recipient)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", tmpl.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", boundary)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")

	for _, att := range attachments {
		decoded, err := base64.StdEncoding.DecodeString(att.Base64)
		if err != nil {
			return nil, apperrors.NewServiceError(
				fmt.Sprintf("failed to decode attachment %s", att.Title), err)
		}

		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		buf.WriteString("Content-Type: application/octet-stream\r\n")
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n",
			att.Title+"."+att.Extension)
		buf.WriteString(base64.StdEncoding.EncodeToString(decoded))
		buf.WriteString("\r\n")
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes(), nil
}

func (s *mailService) deliver(sender, recipient string, message []byte) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	return s.sendMail(addr, auth, sender, []string{recipient}, message)
}

// auditSend records the outcome when the notification carries both audit
// type fields and the catalog maps them to a positive notification id.
func (s *mailService) auditSend(n *model.Notification, sendErr error) error {
	if n.AuditMessageType == "" || n.AuditProcessType == "" {
		return nil
	}

	notificationID, err := s.audits.GetNotificationID(n.AuditMessageType, n.AuditProcessType)
	if err != nil {
		return err
	}
	if notificationID <= 0 {
		return nil
	}

	code := 0
	detail := ""
	if sendErr != nil {
		code = 1
		detail = sendErr.Error()
	}
	return s.audits.CreateNotificationAudit(notificationID, n.NotificationTypeID,
		[]string{n.User.Email}, code, detail)
}
