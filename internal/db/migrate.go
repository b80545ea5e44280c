package db

import (
	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
)

// Migrate runs database migrations.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.NonBusiness{},
		&model.Owner{},
		&model.LegalDocument{},
		&model.ContactDetail{},
		&model.Address{},
		&model.Department{},
		&model.OnboardingAudit{},
		&model.NotificationCatalog{},
		&model.NotificationAudit{},
		&model.BankClient{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional).
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedDepartments(); err != nil {
		logger.Error("Failed to seed departments", err)
		return err
	}

	return nil
}

var departments = []model.Department{
	{ISOCode: "UY-AR", Name: "Artigas"},
	{ISOCode: "UY-CA", Name: "Canelones"},
	{ISOCode: "UY-CL", Name: "Cerro Largo"},
	{ISOCode: "UY-CO", Name: "Colonia"},
	{ISOCode: "UY-DU", Name: "Durazno"},
	{ISOCode: "UY-FS", Name: "Flores"},
	{ISOCode: "UY-FD", Name: "Florida"},
	{ISOCode: "UY-LA", Name: "Lavalleja"},
	{ISOCode: "UY-MA", Name: "Maldonado"},
	{ISOCode: "UY-MO", Name: "Montevideo"},
	{ISOCode: "UY-PA", Name: "Paysandú"},
	{ISOCode: "UY-RN", Name: "Río Negro"},
	{ISOCode: "UY-RV", Name: "Rivera"},
	{ISOCode: "UY-RO", Name: "Rocha"},
	{ISOCode: "UY-SA", Name: "Salto"},
	{ISOCode: "UY-SJ", Name: "San José"},
	{ISOCode: "UY-SO", Name: "Soriano"},
	{ISOCode: "UY-TA", Name: "Tacuarembó"},
	{ISOCode: "UY-TT", Name: "Treinta y Tres"},
}

func seedDepartments() error {
	var count int64
	if err := DB.Model(&model.Department{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := DB.Create(&departments).Error; err != nil {
		return err
	}

	logger.Info("Seeded departments", map[string]interface{}{
		"count": len(departments),
	})
	return nil
}
