package repository

import (
	"strconv"
	"testing"

	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationRepository_GetDepartments(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	repo := NewLocationRepository(testDB)

	// The legacy table pads both code and name columns.
	rows := []model.Department{
		{ISOCode: " UY-MO ", Name: " Montevideo "},
		{ISOCode: "UY-CA", Name: "Canelones"},
	}
	require.NoError(t, testDB.Create(&rows).Error)

	departments, err := repo.GetDepartments()
	require.NoError(t, err)
	assert.Equal(t, map[string]model.DepartmentInfo{
		"UY-MO": {ID: strconv.FormatUint(uint64(rows[0].ID), 10), Name: "Montevideo"},
		"UY-CA": {ID: strconv.FormatUint(uint64(rows[1].ID), 10), Name: "Canelones"},
	}, departments)
}

func TestLocationRepository_GetDepartments_LastWriteWins(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	repo := NewLocationRepository(testDB)

	// Duplicate ISO codes collapse; the later row wins.
	rows := []model.Department{
		{ISOCode: "UY-MO", Name: "Rio Negro"},
		{ISOCode: "UY-MO", Name: "Updated"},
	}
	require.NoError(t, testDB.Create(&rows).Error)

	departments, err := repo.GetDepartments()
	require.NoError(t, err)
	assert.Equal(t, map[string]model.DepartmentInfo{
		"UY-MO": {ID: strconv.FormatUint(uint64(rows[1].ID), 10), Name: "Updated"},
	}, departments)
}
