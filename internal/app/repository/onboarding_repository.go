package repository

import (
	goerrors "errors"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/bancoriental/unipersonal-backend/internal/errors"

	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
	"github.com/bancoriental/unipersonal-backend/pkg/util"
	"gorm.io/gorm"
)

// ErrOwnerNotFound is the cause carried by GetOwner's ServiceError when
// the query matches no row. It is a domain-level miss, distinct from a
// driver failure.
var ErrOwnerNotFound = goerrors.New("Owner not found")

// FormationData is the registry formation payload written by
// UpdateFormationData. Dates arrive as instants and are formatted to the
// legacy yyyyMMdd shape here, pinned to UTC.
type FormationData struct {
	FormationDate time.Time
	IssueDate     time.Time
	IssueNumber   string
}

type OnboardingRepository interface {
	GetStatus(rut, ci string) (string, error)
	UpdateStatus(rut, ci, status string) error
	IsBankClient(rut string) (bool, error)

	Create(nb *model.NonBusiness) error
	SaveBusinessInformation(rut, ci, legalName string, certificateExpiration time.Time) error
	GetNonBusiness(rut, ci string, includeOwner, includeContacts bool) (*model.NonBusiness, error)
	GetOwner(rut, ci string) (*model.Owner, error)

	UpdateCommercialName(rut, ci, name string) error
	UpdateBranch(rut, ci string, branchID int) error
	UpdateFormationData(rut, ci string, data FormationData) error
	UpdateMail(rut, ci, mail string) error
	UpdateMobile(rut, ci, mobile string) error
	UpdateEconomicData(rut, ci string, data *model.EconomicData, incomeThreshold float64) error
	UpdateTerms(rut, ci, version string, acceptedAt time.Time) error

	CreateAddress(rut, ci string, addr *model.AddressData) error
}

type onboardingRepository struct {
	db *gorm.DB
}

func NewOnboardingRepository(db *gorm.DB) OnboardingRepository {
	return &onboardingRepository{db: db}
}

func (r *onboardingRepository) identityScope(rut, ci string) *gorm.DB {
	return r.db.Where("business_document = ? AND person_document = ?", rut, ci)
}

// GetStatus returns the trimmed onboarding status, or "" when the
// identity has no row or the column is NULL. It never returns a non-empty
// value for a missing record.
func (r *onboardingRepository) GetStatus(rut, ci string) (string, error) {
	var nb model.NonBusiness
	err := r.identityScope(rut, ci).Select("status").First(&nb).Error
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		logger.Error("Failed to read onboarding status", err, map[string]interface{}{
			"rut": rut,
		})
		return "", apperrors.NewServiceError("failed to read onboarding status", err)
	}
	return strings.TrimSpace(nb.Status), nil
}

// UpdateStatus sets the onboarding status. Zero affected rows is not an
// error; the legacy flow treats it as an idempotent success.
func (r *onboardingRepository) UpdateStatus(rut, ci, status string) error {
	err := r.identityScope(rut, ci).
		Model(&model.NonBusiness{}).
		Update("status", status).Error
	if err != nil {
		logger.Error("Failed to update onboarding status", err, map[string]interface{}{
			"rut":    rut,
			"status": status,
		})
		return apperrors.NewServiceError("failed to update onboarding status", err)
	}
	return nil
}

// IsBankClient checks the central client registry projection.
func (r *onboardingRepository) IsBankClient(rut string) (bool, error) {
	var count int64
	err := r.db.Model(&model.BankClient{}).
		Where("document = ?", rut).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check bank client registry", err, map[string]interface{}{
			"rut": rut,
		})
		return false, apperrors.NewServiceError("failed to check bank client registry", err)
	}
	return count > 0, nil
}

func (r *onboardingRepository) Create(nb *model.NonBusiness) error {
	logger.Debug("Creating non-business record", map[string]interface{}{
		"rut": nb.BusinessDocument,
	})

	if err := r.db.Create(nb).Error; err != nil {
		logger.Error("Failed to create non-business record", err, map[string]interface{}{
			"rut": nb.BusinessDocument,
		})
		return apperrors.NewServiceError("failed to create non-business record", err)
	}
	return nil
}

// SaveBusinessInformation upserts the registry data fetched during
// Search: legal name plus the DGI certificate document.
func (r *onboardingRepository) SaveBusinessInformation(rut, ci, legalName string, certificateExpiration time.Time) error {
	nb := model.NonBusiness{
		BusinessDocument: rut,
		PersonDocument:   ci,
		Status:           model.StatusIngreso,
	}
	err := r.identityScope(rut, ci).FirstOrCreate(&nb).Error
	if err != nil {
		logger.Error("Failed to upsert non-business record", err, map[string]interface{}{
			"rut": rut,
		})
		return apperrors.NewServiceError("failed to save business information", err)
	}

	err = r.db.Model(&nb).Update("legal_name", legalName).Error
	if err != nil {
		return apperrors.NewServiceError("failed to save business information", err)
	}

	doc := model.LegalDocument{
		NonBusinessID:  nb.ID,
		Type:           model.LegalDocumentDGICertificate,
		ExpirationDate: util.FormatCompactDate(certificateExpiration),
	}
	err = r.db.Where("non_business_id = ? AND type = ?", nb.ID, model.LegalDocumentDGICertificate).
		Assign(model.LegalDocument{ExpirationDate: doc.ExpirationDate}).
		FirstOrCreate(&doc).Error
	if err != nil {
		logger.Error("Failed to save DGI certificate", err, map[string]interface{}{
			"rut": rut,
		})
		return apperrors.NewServiceError("failed to save business information", err)
	}
	return nil
}

// GetNonBusiness loads the record, or nil when it does not exist. Owner
// and contact sub-objects are populated only when the flags ask for
// them. Legal-document Active flags are derived against the current day.
func (r *onboardingRepository) GetNonBusiness(rut, ci string, includeOwner, includeContacts bool) (*model.NonBusiness, error) {
	query := r.identityScope(rut, ci).Preload("LegalDocuments")
	if includeOwner {
		query = query.Preload("Owner")
	}
	if includeContacts {
		query = query.Preload("Contacts")
	}

	var nb model.NonBusiness
	err := query.First(&nb).Error
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to load non-business record", err, map[string]interface{}{
			"rut": rut,
		})
		return nil, apperrors.NewServiceError("failed to load non-business record", err)
	}

	now := time.Now()
	for i := range nb.LegalDocuments {
		nb.LegalDocuments[i].Active = documentActive(nb.LegalDocuments[i].ExpirationDate, now)
	}
	return &nb, nil
}

// documentActive parses a yyyyMMdd expiration and compares it against
// the current day. Unparseable dates count as inactive.
func documentActive(expiration string, now time.Time) bool {
	exp, err := util.ParseCompactDate(expiration)
	if err != nil {
		return false
	}
	return exp.After(now)
}

// GetOwner loads the owner, failing with a ServiceError whose cause is
// ErrOwnerNotFound when the record has no owner. That miss is a domain
// failure, not an infrastructure one.
func (r *onboardingRepository) GetOwner(rut, ci string) (*model.Owner, error) {
	var owner model.Owner
	err := r.db.Joins("JOIN non_businesses ON non_businesses.id = non_business_owners.non_business_id").
		Where("non_businesses.business_document = ? AND non_businesses.person_document = ?", rut, ci).
		First(&owner).Error
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewServiceError("failed to get owner", ErrOwnerNotFound)
	}
	if err != nil {
		logger.Error("Failed to load owner", err, map[string]interface{}{
			"rut": rut,
		})
		return nil, apperrors.NewServiceError("failed to get owner", err)
	}
	return &owner, nil
}

func (r *onboardingRepository) UpdateCommercialName(rut, ci, name string) error {
	err := r.identityScope(rut, ci).
		Model(&model.NonBusiness{}).
		Update("commercial_name", name).Error
	if err != nil {
		logger.Error("Failed to update commercial name", err, map[string]interface{}{
			"rut": rut,
		})
		return apperrors.NewServiceError("failed to update commercial name", err)
	}
	return nil
}

func (r *onboardingRepository) UpdateBranch(rut, ci string, branchID int) error {
	err := r.identityScope(rut, ci).
		Model(&model.NonBusiness{}).
		Update("branch_id", branchID).Error
	if err != nil {
		logger.Error("Failed to update branch", err, map[string]interface{}{
			"rut":    rut,
			"branch": branchID,
		})
		return apperrors.NewServiceError("failed to update branch", err)
	}
	return nil
}

// UpdateFormationData writes the formation and BPS issue dates. Both are
// formatted yyyyMMdd pinned to UTC; the issue date lands on the record
// and on the BPS legal document, as the legacy statement bound it twice.
func (r *onboardingRepository) UpdateFormationData(rut, ci string, data FormationData) error {
	formation := util.FormatCompactDate(data.FormationDate)
	issue := util.FormatCompactDate(data.IssueDate)

	var nb model.NonBusiness
	if err := r.identityScope(rut, ci).First(&nb).Error; err != nil {
		logger.Error("Failed to locate record for formation data", err, map[string]interface{}{
			"rut": rut,
		})
		return apperrors.NewServiceError("failed to update formation data", err)
	}

	err := r.db.Model(&nb).Updates(map[string]interface{}{
		"formation_date": formation,
		"bps_issue_date": issue,
	}).Error
	if err != nil {
		logger.Error("Failed to update formation data", err, map[string]interface{}{
			"rut": rut,
		})
		return apperrors.NewServiceError("failed to update formation data", err)
	}

	doc := model.LegalDocument{
		NonBusinessID: nb.ID,
		Type:          model.LegalDocumentBPSRegistration,
		Number:        data.IssueNumber,
		IssueDate:     issue,
	}
	err = r.db.Where("non_business_id = ? AND type = ?", nb.ID, model.LegalDocumentBPSRegistration).
		Assign(model.LegalDocument{Number: data.IssueNumber, IssueDate: issue}).
		FirstOrCreate(&doc).Error
	if err != nil {
		logger.Error("Failed to update BPS document", err, map[string]interface{}{
			"rut": rut,
		})
		return apperrors.NewServiceError("failed to update formation data", err)
	}
	return nil
}

func (r *onboardingRepository) UpdateMail(rut, ci, mail string) error {
	return r.upsertContact(rut, ci, model.ContactTypeEmail, mail)
}

func (r *onboardingRepository) UpdateMobile(rut, ci, mobile string) error {
	return r.upsertContact(rut, ci, model.ContactTypeMobile, mobile)
}

func (r *onboardingRepository) upsertContact(rut, ci, contactType, value string) error {
	var nb model.NonBusiness
	if err := r.identityScope(rut, ci).First(&nb).Error; err != nil {
		logger.Error("Failed to locate record for contact update", err, map[string]interface{}{
			"rut":  rut,
			"type": contactType,
		})
		return apperrors.NewServiceError("failed to update contact detail", err)
	}

	contact := model.ContactDetail{
		NonBusinessID: nb.ID,
		Type:          contactType,
		Value:         value,
	}
	err := r.db.Where("non_business_id = ? AND type = ?", nb.ID, contactType).
		Assign(model.ContactDetail{Value: value}).
		FirstOrCreate(&contact).Error
	if err != nil {
		logger.Error("Failed to upsert contact detail", err, map[string]interface{}{
			"rut":  rut,
			"type": contactType,
		})
		return apperrors.NewServiceError("failed to update contact detail", err)
	}
	return nil
}

// UpdateEconomicData persists the first annual-income balance. Without a
// qualifying balance no statement is issued and the call succeeds as a
// no-op. The package assignment derives from the configured threshold.
func (r *onboardingRepository) UpdateEconomicData(rut, ci string, data *model.EconomicData, incomeThreshold float64) error {
	balance := data.QualifyingBalance()
	if balance == nil {
		logger.Debug("No qualifying balance, skipping economic update", map[string]interface{}{
			"rut": rut,
		})
		return nil
	}

	packageAssignment := model.IncomeAssignFull
	if balance.Amount > incomeThreshold {
		packageAssignment = model.IncomeAssignPartial
	}

	err := r.identityScope(rut, ci).
		Model(&model.NonBusiness{}).
		Updates(map[string]interface{}{
			"economic_activity_id": data.EconomicActivityID,
			"tax_condition_id":     data.TaxConditionID,
			"annual_income":        balance.Amount,
			"income_date":          balance.IncomeDate,
			"package_assignment":   packageAssignment,
		}).Error
	if err != nil {
		logger.Error("Failed to update economic data", err, map[string]interface{}{
			"rut": rut,
		})
		return apperrors.NewServiceError("failed to update economic data", err)
	}
	return nil
}

func (r *onboardingRepository) UpdateTerms(rut, ci, version string, acceptedAt time.Time) error {
	err := r.identityScope(rut, ci).
		Model(&model.NonBusiness{}).
		Updates(map[string]interface{}{
			"terms_version":     version,
			"terms_accepted_at": acceptedAt,
		}).Error
	if err != nil {
		logger.Error("Failed to update terms acceptance", err, map[string]interface{}{
			"rut": rut,
		})
		return apperrors.NewServiceError("failed to update terms acceptance", err)
	}
	return nil
}

// CreateAddress persists the business address. The channel sends ids as
// strings; parse failures surface as raw strconv errors on purpose, they
// mark malformed channel payloads rather than infrastructure trouble.
func (r *onboardingRepository) CreateAddress(rut, ci string, addr *model.AddressData) error {
	countryID, err := strconv.Atoi(addr.Country.ID)
	if err != nil {
		return err
	}
	departmentID, err := strconv.Atoi(addr.Department.ID)
	if err != nil {
		return err
	}
	cityID, err := strconv.Atoi(addr.City.ID)
	if err != nil {
		return err
	}

	var nb model.NonBusiness
	if err := r.identityScope(rut, ci).First(&nb).Error; err != nil {
		logger.Error("Failed to locate record for address", err, map[string]interface{}{
			"rut": rut,
		})
		return apperrors.NewServiceError("failed to create address", err)
	}

	address := &model.Address{
		NonBusinessID: nb.ID,
		PostalCode:    addr.PostalCode,
		CountryID:     countryID,
		DepartmentID:  departmentID,
		CityID:        cityID,
		Level1:        addr.Level1,
		Level2:        addr.Level2,
		Level3:        addr.Level3,
	}
	if err := r.db.Create(address).Error; err != nil {
		logger.Error("Failed to create address", err, map[string]interface{}{
			"rut": rut,
		})
		return apperrors.NewServiceError("failed to create address", err)
	}
	return nil
}
