package service

import (
	"fmt"

	apperrors "github.com/bancoriental/unipersonal-backend/internal/errors"

	"github.com/bancoriental/unipersonal-backend/internal/app/repository"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ReportService exports the audit trails as a spreadsheet for the
// operations team.
type ReportService interface {
	ExportAudits(from, to, outputPath string) error
}

type reportService struct {
	audits repository.AuditRepository
}

func NewReportService(audits repository.AuditRepository) ReportService {
	return &reportService{audits: audits}
}

// ExportAudits writes one sheet per trail covering [from, to).
func (s *reportService) ExportAudits(from, to, outputPath string) error {
	statusRows, err := s.audits.ListStatusAudits(from, to)
	if err != nil {
		return err
	}
	notificationRows, err := s.audits.ListNotificationAudits(from, to)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	statusSheet := "Estados"
	f.SetSheetName("Sheet1", statusSheet)
	headers := []string{"Fecha", "RUT", "CI", "Estado", "Proceso", "Canal", "Mensaje"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(statusSheet, cell, h)
	}
	for i, row := range statusRows {
		values := []interface{}{
			row.CreatedAt.Format("2006-01-02 15:04:05"),
			row.BusinessDocument,
			row.PersonDocument,
			row.StatusID,
			row.Process,
			row.ChannelID,
			row.Message,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(statusSheet, cell, v)
		}
	}

	mailSheet := "Notificaciones"
	if _, err := f.NewSheet(mailSheet); err != nil {
		return apperrors.NewServiceError("failed to build audit report", err)
	}
	mailHeaders := []string{"Fecha", "Notificación", "Plantilla", "Destinatarios", "Resultado", "Detalle"}
	for i, h := range mailHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(mailSheet, cell, h)
	}
	for i, row := range notificationRows {
		result := "OK"
		if row.Code != 0 {
			result = "ERROR"
		}
		values := []interface{}{
			row.CreatedAt.Format("2006-01-02 15:04:05"),
			row.NotificationID,
			row.TemplateID,
			fmt.Sprintf("%v", []string(row.Recipients)),
			result,
			row.Detail,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(mailSheet, cell, v)
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return apperrors.NewServiceError("failed to write audit report", err)
	}

	logger.Info("Audit report written", map[string]interface{}{
		"path":        outputPath,
		"status_rows": len(statusRows),
		"mail_rows":   len(notificationRows),
	})
	return nil
}
