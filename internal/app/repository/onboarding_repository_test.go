package repository

import (
	goerrors "errors"
	"strconv"
	"testing"
	"time"

	apperrors "github.com/bancoriental/unipersonal-backend/internal/errors"

	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testRUT = "211234567890"
	testCI  = "41234567"
)

func setupRepositoryTest(t *testing.T) (OnboardingRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewOnboardingRepository(testDB), testDB
}

func createTestRecord(t *testing.T, testDB *gorm.DB, status string) *model.NonBusiness {
	nb := &model.NonBusiness{
		BusinessDocument:     testRUT,
		BusinessDocumentType: 2,
		PersonDocument:       testCI,
		PersonDocumentType:   1,
		Status:               status,
	}
	require.NoError(t, testDB.Create(nb).Error)
	return nb
}

func TestOnboardingRepository_GetStatus_NoRow(t *testing.T) {
	repo, _ := setupRepositoryTest(t)

	status, err := repo.GetStatus(testRUT, testCI)
	assert.NoError(t, err)
	assert.Equal(t, "", status)
}

func TestOnboardingRepository_GetStatus_Trimmed(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	createTestRecord(t, testDB, "  INGRESO ")

	status, err := repo.GetStatus(testRUT, testCI)
	assert.NoError(t, err)
	assert.Equal(t, "INGRESO", status)
}

func TestOnboardingRepository_GetStatus_EmptyColumn(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	createTestRecord(t, testDB, "")

	status, err := repo.GetStatus(testRUT, testCI)
	assert.NoError(t, err)
	assert.Equal(t, "", status)
}

func TestOnboardingRepository_UpdateStatus_ZeroRowsIsSuccess(t *testing.T) {
	repo, _ := setupRepositoryTest(t)

	// No record exists; the update matches nothing and still succeeds.
	err := repo.UpdateStatus(testRUT, testCI, model.StatusDGIOK)
	assert.NoError(t, err)
}

func TestOnboardingRepository_IsBankClient(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)

	isClient, err := repo.IsBankClient(testRUT)
	require.NoError(t, err)
	assert.False(t, isClient)

	require.NoError(t, testDB.Create(&model.BankClient{Document: testRUT}).Error)

	isClient, err = repo.IsBankClient(testRUT)
	require.NoError(t, err)
	assert.True(t, isClient)
}

func TestOnboardingRepository_GetOwner_NotFound(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	createTestRecord(t, testDB, model.StatusIngreso)

	_, err := repo.GetOwner(testRUT, testCI)
	require.Error(t, err)

	var se *apperrors.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Owner not found", se.Err.Error())
}

func TestOnboardingRepository_GetOwner_Found(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	nb := createTestRecord(t, testDB, model.StatusIngreso)
	require.NoError(t, testDB.Create(&model.Owner{
		NonBusinessID: nb.ID,
		Document:      testCI,
		FirstName:     "Juan",
		LastName:      "Pérez",
	}).Error)

	owner, err := repo.GetOwner(testRUT, testCI)
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", owner.FullName())
}

func TestOnboardingRepository_UpdateFormationData_CompactDates(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	nb := createTestRecord(t, testDB, model.StatusIngreso)

	loc, err := time.LoadLocation("America/Montevideo")
	require.NoError(t, err)

	// Late evening in Montevideo is already the next day in UTC; the
	// stored value must follow UTC.
	err = repo.UpdateFormationData(testRUT, testCI, FormationData{
		FormationDate: time.Date(2025, 3, 10, 23, 30, 0, 0, loc),
		IssueDate:     time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC),
		IssueNumber:   "BPS-1234",
	})
	require.NoError(t, err)

	var updated model.NonBusiness
	require.NoError(t, testDB.First(&updated, nb.ID).Error)
	assert.Equal(t, "20250311", updated.FormationDate)
	assert.Equal(t, "20250402", updated.BPSIssueDate)

	var doc model.LegalDocument
	require.NoError(t, testDB.Where("non_business_id = ? AND type = ?",
		nb.ID, model.LegalDocumentBPSRegistration).First(&doc).Error)
	assert.Equal(t, "BPS-1234", doc.Number)
	assert.Equal(t, "20250402", doc.IssueDate)
}

func TestOnboardingRepository_UpdateEconomicData_NoQualifyingBalance(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	nb := createTestRecord(t, testDB, model.StatusIngreso)

	data := &model.EconomicData{
		EconomicActivityID: 12,
		TaxConditionID:     3,
		Balances: []model.Balance{
			{BalanceType: "MONTHLY_EXPENSES", Amount: 5000, IncomeDate: "20250101"},
		},
	}
	require.NoError(t, repo.UpdateEconomicData(testRUT, testCI, data, 1000000))

	// Nothing was written.
	var updated model.NonBusiness
	require.NoError(t, testDB.First(&updated, nb.ID).Error)
	assert.Nil(t, updated.EconomicActivityID)
	assert.Zero(t, updated.AnnualIncome)
	assert.Empty(t, updated.PackageAssignment)
}

func TestOnboardingRepository_UpdateEconomicData_FirstQualifyingWins(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	nb := createTestRecord(t, testDB, model.StatusIngreso)

	data := &model.EconomicData{
		EconomicActivityID: 12,
		TaxConditionID:     3,
		Balances: []model.Balance{
			{BalanceType: "MONTHLY_EXPENSES", Amount: 5000, IncomeDate: "20250101"},
			{BalanceType: model.BalanceRealAnnualIncome, Amount: 800000, IncomeDate: "20250201"},
			{BalanceType: model.BalanceProjectedAnnualIncome, Amount: 9999999, IncomeDate: "20250301"},
		},
	}
	require.NoError(t, repo.UpdateEconomicData(testRUT, testCI, data, 1000000))

	var updated model.NonBusiness
	require.NoError(t, testDB.First(&updated, nb.ID).Error)
	assert.Equal(t, float64(800000), updated.AnnualIncome)
	assert.Equal(t, "20250201", updated.IncomeDate)
	assert.Equal(t, model.IncomeAssignFull, updated.PackageAssignment)
}

func TestOnboardingRepository_UpdateEconomicData_AboveThresholdIsPartial(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	nb := createTestRecord(t, testDB, model.StatusIngreso)

	data := &model.EconomicData{
		Balances: []model.Balance{
			{BalanceType: model.BalanceProjectedAnnualIncome, Amount: 1500000, IncomeDate: "20250301"},
		},
	}
	require.NoError(t, repo.UpdateEconomicData(testRUT, testCI, data, 1000000))

	var updated model.NonBusiness
	require.NoError(t, testDB.First(&updated, nb.ID).Error)
	assert.Equal(t, model.IncomeAssignPartial, updated.PackageAssignment)
}

func TestOnboardingRepository_CreateAddress_InvalidID(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	createTestRecord(t, testDB, model.StatusIngreso)

	addr := &model.AddressData{
		Country:    model.Item{ID: "858"},
		Department: model.Item{ID: "not-a-number"},
		City:       model.Item{ID: "1"},
	}
	err := repo.CreateAddress(testRUT, testCI, addr)
	require.Error(t, err)

	// Parse failures stay raw; they never become a ServiceError.
	var se *apperrors.ServiceError
	assert.False(t, goerrors.As(err, &se))

	var numErr *strconv.NumError
	assert.True(t, goerrors.As(err, &numErr))
}

func TestOnboardingRepository_CreateAddress_Success(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	nb := createTestRecord(t, testDB, model.StatusIngreso)

	addr := &model.AddressData{
		PostalCode: "11300",
		Country:    model.Item{ID: "858", Name: "Uruguay"},
		Department: model.Item{ID: "10", Name: "Montevideo"},
		City:       model.Item{ID: "1", Name: "Montevideo"},
		Level1:     "18 de Julio",
		Level2:     "1234",
	}
	require.NoError(t, repo.CreateAddress(testRUT, testCI, addr))

	var stored model.Address
	require.NoError(t, testDB.Where("non_business_id = ?", nb.ID).First(&stored).Error)
	assert.Equal(t, 10, stored.DepartmentID)
	assert.Equal(t, "18 de Julio", stored.Level1)
}

func TestOnboardingRepository_GetNonBusiness_Flags(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	nb := createTestRecord(t, testDB, model.StatusIngreso)
	require.NoError(t, testDB.Create(&model.Owner{NonBusinessID: nb.ID, Document: testCI}).Error)
	require.NoError(t, testDB.Create(&model.ContactDetail{
		NonBusinessID: nb.ID,
		Type:          model.ContactTypeEmail,
		Value:         "unipersonal@example.com.uy",
	}).Error)

	got, err := repo.GetNonBusiness(testRUT, testCI, false, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Owner)
	assert.Empty(t, got.Contacts)

	got, err = repo.GetNonBusiness(testRUT, testCI, true, true)
	require.NoError(t, err)
	require.NotNil(t, got.Owner)
	require.Len(t, got.Contacts, 1)
}

func TestOnboardingRepository_GetNonBusiness_ActiveDerived(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	nb := createTestRecord(t, testDB, model.StatusIngreso)
	require.NoError(t, testDB.Create(&model.LegalDocument{
		NonBusinessID:  nb.ID,
		Type:           model.LegalDocumentDGICertificate,
		ExpirationDate: time.Now().AddDate(1, 0, 0).UTC().Format("20060102"),
	}).Error)
	require.NoError(t, testDB.Create(&model.LegalDocument{
		NonBusinessID:  nb.ID,
		Type:           model.LegalDocumentBPSRegistration,
		ExpirationDate: "20200101",
	}).Error)

	got, err := repo.GetNonBusiness(testRUT, testCI, false, false)
	require.NoError(t, err)
	require.Len(t, got.LegalDocuments, 2)

	byType := map[string]bool{}
	for _, doc := range got.LegalDocuments {
		byType[doc.Type] = doc.Active
	}
	assert.True(t, byType[model.LegalDocumentDGICertificate])
	assert.False(t, byType[model.LegalDocumentBPSRegistration])
}

func TestOnboardingRepository_GetNonBusiness_Missing(t *testing.T) {
	repo, _ := setupRepositoryTest(t)

	got, err := repo.GetNonBusiness(testRUT, testCI, true, true)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestOnboardingRepository_UpsertContact_Overwrites(t *testing.T) {
	repo, testDB := setupRepositoryTest(t)
	nb := createTestRecord(t, testDB, model.StatusIngreso)

	require.NoError(t, repo.UpdateMail(testRUT, testCI, "first@example.com.uy"))
	require.NoError(t, repo.UpdateMail(testRUT, testCI, "second@example.com.uy"))

	var contacts []model.ContactDetail
	require.NoError(t, testDB.Where("non_business_id = ? AND type = ?",
		nb.ID, model.ContactTypeEmail).Find(&contacts).Error)
	require.Len(t, contacts, 1)
	assert.Equal(t, "second@example.com.uy", contacts[0].Value)
}
