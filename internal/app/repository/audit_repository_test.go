package repository

import (
	"testing"

	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuditTest(t *testing.T) (AuditRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewAuditRepository(testDB), testDB
}

func TestAuditRepository_AuditStatusChange_DefaultStatus(t *testing.T) {
	repo, testDB := setupAuditTest(t)

	status := model.NewStatus(model.StatusDGIOK, "BUSQUEDA")
	require.NoError(t, repo.AuditStatusChange(testRUT, testCI, status))

	var row model.OnboardingAudit
	require.NoError(t, testDB.First(&row).Error)
	assert.Equal(t, testRUT, row.BusinessDocument)
	assert.Equal(t, testCI, row.PersonDocument)
	assert.Equal(t, model.StatusDGIOK, row.StatusID)
	assert.Equal(t, "BUSQUEDA", row.Process)

	// Default-factory status: channel 40, empty message, and the two
	// reserved placeholder columns.
	assert.Equal(t, model.DefaultChannelID, row.ChannelID)
	assert.Equal(t, "", row.Message)
	assert.Equal(t, "", row.ReservedText)
	assert.Equal(t, 0, row.ReservedFlag)
}

func TestAuditRepository_GetNotificationID_Missing(t *testing.T) {
	repo, _ := setupAuditTest(t)

	id, err := repo.GetNotificationID("ALTA", "MAIL")
	assert.NoError(t, err)
	assert.Equal(t, 0, id)
}

func TestAuditRepository_GetNotificationID_Found(t *testing.T) {
	repo, testDB := setupAuditTest(t)
	require.NoError(t, testDB.Create(&model.NotificationCatalog{
		MessageType:    "ALTA",
		ProcessType:    "MAIL",
		NotificationID: 7,
	}).Error)

	id, err := repo.GetNotificationID("ALTA", "MAIL")
	assert.NoError(t, err)
	assert.Equal(t, 7, id)
}

func TestAuditRepository_CreateNotificationAudit(t *testing.T) {
	repo, testDB := setupAuditTest(t)

	err := repo.CreateNotificationAudit(7, "alta_unipersonal",
		[]string{"unipersonal@example.com.uy"}, 1, "smtp timeout")
	require.NoError(t, err)

	var row model.NotificationAudit
	require.NoError(t, testDB.First(&row).Error)
	assert.Equal(t, 7, row.NotificationID)
	assert.Equal(t, 1, row.Code)
	assert.Equal(t, "smtp timeout", row.Detail)
}
