package repository

import (
	goerrors "errors"

	apperrors "github.com/bancoriental/unipersonal-backend/internal/errors"

	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type AuditRepository interface {
	AuditStatusChange(rut, ci string, status model.Status) error
	GetNotificationID(messageType, processType string) (int, error)
	CreateNotificationAudit(notificationID int, templateID string, recipients []string, code int, detail string) error
	ListStatusAudits(from, to string) ([]model.OnboardingAudit, error)
	ListNotificationAudits(from, to string) ([]model.NotificationAudit, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// AuditStatusChange appends one row to the status trail. The reserved
// columns always carry their placeholder values.
func (r *auditRepository) AuditStatusChange(rut, ci string, status model.Status) error {
	row := model.OnboardingAudit{
		BusinessDocument: rut,
		PersonDocument:   ci,
		StatusID:         status.ID,
		Process:          status.Process,
		ChannelID:        status.ChannelID,
		Message:          status.Message,
		ReservedText:     "",
		ReservedFlag:     0,
	}
	if err := r.db.Create(&row).Error; err != nil {
		logger.Error("Failed to audit status change", err, map[string]interface{}{
			"rut":    rut,
			"status": status.ID,
		})
		return apperrors.NewServiceError("failed to audit status change", err)
	}
	return nil
}

// GetNotificationID resolves the numeric notification id for an audit
// type pair. A missing pair resolves to 0, which disables auditing.
func (r *auditRepository) GetNotificationID(messageType, processType string) (int, error) {
	var entry model.NotificationCatalog
	err := r.db.Where("message_type = ? AND process_type = ?", messageType, processType).
		First(&entry).Error
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		logger.Error("Failed to resolve notification id", err, map[string]interface{}{
			"message_type": messageType,
			"process_type": processType,
		})
		return 0, apperrors.NewServiceError("failed to resolve notification id", err)
	}
	return entry.NotificationID, nil
}

func (r *auditRepository) CreateNotificationAudit(notificationID int, templateID string, recipients []string, code int, detail string) error {
	row := model.NotificationAudit{
		NotificationID: notificationID,
		TemplateID:     templateID,
		Recipients:     pq.StringArray(recipients),
		Code:           code,
		Detail:         detail,
	}
	if err := r.db.Create(&row).Error; err != nil {
		logger.Error("Failed to audit notification", err, map[string]interface{}{
			"template": templateID,
			"code":     code,
		})
		return apperrors.NewServiceError("failed to audit notification", err)
	}
	return nil
}

// ListStatusAudits returns the status trail between two days, inclusive.
func (r *auditRepository) ListStatusAudits(from, to string) ([]model.OnboardingAudit, error) {
	var rows []model.OnboardingAudit
	err := r.db.Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		logger.Error("Failed to list status audits", err, nil)
		return nil, apperrors.NewServiceError("failed to list status audits", err)
	}
	return rows, nil
}

func (r *auditRepository) ListNotificationAudits(from, to string) ([]model.NotificationAudit, error) {
	var rows []model.NotificationAudit
	err := r.db.Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		logger.Error("Failed to list notification audits", err, nil)
		return nil, apperrors.NewServiceError("failed to list notification audits", err)
	}
	return rows, nil
}
