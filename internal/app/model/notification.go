package model

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// NotificationTypeTopes marks the "modificación de topes" template family,
// the only family with mandatory data fields.
const NotificationTypeTopes = "modificacion_topes"

// Fields required by the topes family before rendering.
const (
	TopesFieldService   = "servicio"
	TopesFieldMaxAmount = "importeMaximoPorDia"
	TopesFieldMaxCount  = "cantidadMaximaPorDia"
)

// Notification is one outbound mail request.
type Notification struct {
	NotificationTypeID string            `json:"notification_type_id"`
	Data               map[string]string `json:"data"`
	User               NotificationUser  `json:"user"`
	AuditMessageType   string            `json:"audit_message_type"`
	AuditProcessType   string            `json:"audit_process_type"`
	Attachments        []Attachment      `json:"attachments"`
}

// IsTopesFamily reports whether the notification belongs to the
// "modificación de topes" family.
func (n *Notification) IsTopesFamily() bool {
	return strings.HasPrefix(n.NotificationTypeID, NotificationTypeTopes)
}

type NotificationUser struct {
	Email string `json:"email"`
}

// Attachment is a base64-encoded file attached to the mail.
type Attachment struct {
	Title     string `json:"title"`
	Extension string `json:"extension"`
	Base64    string `json:"base64"`
}

// MailTemplate is the on-disk JSON configuration of one template:
// templates/{id}.json, with the body in templates/html/{id}.html when
// UseHTMLTemplate is set.
type MailTemplate struct {
	UseHTMLTemplate bool   `json:"useHTMLTemplate"`
	Body            string `json:"body"`
	Sender          string `json:"sender"`
	SenderName      string `json:"senderName"`
	Subject         string `json:"subject"`
}

// NotificationCatalog maps audit type pairs to the numeric notification
// id the audit trail references. A non-positive id disables auditing for
// that pair.
type NotificationCatalog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	MessageType    string `gorm:"size:40;not null;index:idx_notification_catalog_types" json:"message_type"`
	ProcessType    string `gorm:"size:40;not null;index:idx_notification_catalog_types" json:"process_type"`
	NotificationID int    `gorm:"not null" json:"notification_id"`
}

func (NotificationCatalog) TableName() string {
	return "notification_catalog"
}

// NotificationAudit is one row of the mail audit trail. Code 0 records a
// successful send, 1 a failed one.
type NotificationAudit struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	NotificationID int            `gorm:"not null;index" json:"notification_id"`
	TemplateID     string         `gorm:"size:60;not null" json:"template_id"`
	Recipients     pq.StringArray `gorm:"type:text[]" json:"recipients"`
	Code           int            `gorm:"not null" json:"code"`
	Detail         string         `gorm:"size:200" json:"detail"`
}

func (NotificationAudit) TableName() string {
	return "notification_audit"
}
