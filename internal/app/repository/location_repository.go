package repository

import (
	"strconv"
	"strings"

	apperrors "github.com/bancoriental/unipersonal-backend/internal/errors"

	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
	"gorm.io/gorm"
)

type LocationRepository interface {
	GetDepartments() (map[string]model.DepartmentInfo, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

// GetDepartments returns the department lookup keyed by trimmed ISO
// code. Codes and names arrive padded from the legacy table, both are
// trimmed. Duplicate codes collapse in read order, last one wins.
func (r *locationRepository) GetDepartments() (map[string]model.DepartmentInfo, error) {
	var rows []model.Department
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		logger.Error("Failed to load departments", err, nil)
		return nil, apperrors.NewServiceError("failed to load departments", err)
	}

	departments := make(map[string]model.DepartmentInfo, len(rows))
	for _, row := range rows {
		departments[strings.TrimSpace(row.ISOCode)] = model.DepartmentInfo{
			ID:   strconv.FormatUint(uint64(row.ID), 10),
			Name: strings.TrimSpace(row.Name),
		}
	}
	return departments, nil
}
