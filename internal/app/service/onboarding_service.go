package service

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/bancoriental/unipersonal-backend/internal/errors"

	"github.com/bancoriental/unipersonal-backend/config"
	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/internal/app/repository"
	"github.com/bancoriental/unipersonal-backend/internal/registry"
	"github.com/bancoriental/unipersonal-backend/pkg/idcodec"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
	"github.com/bancoriental/unipersonal-backend/pkg/util"
)

// Audit process identifiers, one per workflow.
const (
	processSearch   = "BUSQUEDA"
	processCreate   = "ALTA"
	processContact  = "CONTACTO"
	processEconomic = "DATOS_ECONOMICOS"
	processAddress  = "DIRECCION"
	processTerms    = "TERMINOS"
)

// Document type codes used in the identity tuple.
const (
	documentTypeCI  = 1
	documentTypeRUT = 2
)

const countryUruguay = 858

// Blacklist answers whether a mail address is blocked for onboarding.
type Blacklist interface {
	IsBlacklisted(ctx context.Context, mail string) (bool, error)
}

// SearchResult is the registry view returned by Search.
type SearchResult struct {
	LegalName             string    `json:"legal_name"`
	RUT                   string    `json:"rut"`
	CertificateExpiration time.Time `json:"certificate_expiration"`
	LegalAddress          string    `json:"legal_address"`
}

// LegalDocumentInput is a registry document sent by the channel.
type LegalDocumentInput struct {
	Type      string    `json:"type"`
	Number    string    `json:"number"`
	IssueDate time.Time `json:"issue_date"`
}

// UserInput carries the first-login credential sent by the channel.
type UserInput struct {
	Password string `json:"password"`
}

// PatchData bundles the optional updates of Patch. Each field triggers
// its own update only when present.
type PatchData struct {
	CommercialName string               `json:"commercial_name"`
	BranchID       *int                 `json:"branch_id"`
	FormationDate  *time.Time           `json:"formation_date"`
	LegalDocuments []LegalDocumentInput `json:"legal_documents"`
	User           *UserInput           `json:"user"`
}

// ContactInput is a single contact detail sent by the channel.
type ContactInput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// OnboardingService implements the unipersonal onboarding workflows.
type OnboardingService interface {
	Search(ctx context.Context, userID, rut string) ([]SearchResult, error)
	Create(ctx context.Context, rut, ownerDocument, cellphone string) (string, error)
	Patch(ctx context.Context, externalID string, data PatchData) error
	PatchEconomicData(ctx context.Context, externalID string, data *model.EconomicData) error
	CreateAddress(ctx context.Context, externalID string, addr *model.AddressData) error
	CreateContactDetail(ctx context.Context, externalID string, contact ContactInput) error
	GetByID(ctx context.Context, externalID string, includeOwner, includeContacts bool) (*model.NonBusiness, error)
	UpdateTerms(ctx context.Context, externalID, version string) error
}

type onboardingService struct {
	repo      repository.OnboardingRepository
	audits    repository.AuditRepository
	passwords repository.PasswordRepository
	registry  registry.Client
	blacklist Blacklist
	codec     *idcodec.Codec
	cfg       config.OnboardingConfig
}

func NewOnboardingService(
	repo repository.OnboardingRepository,
	audits repository.AuditRepository,
	passwords repository.PasswordRepository,
	registryClient registry.Client,
	blacklist Blacklist,
	codec *idcodec.Codec,
	cfg config.OnboardingConfig,
) OnboardingService {
	return &onboardingService{
		repo:      repo,
		audits:    audits,
		passwords: passwords,
		registry:  registryClient,
		blacklist: blacklist,
		codec:     codec,
		cfg:       cfg,
	}
}

// resolveIdentity opens the external id. Any decode failure surfaces as
// a ServiceError with a fixed decryption message.
func (s *onboardingService) resolveIdentity(externalID string) (idcodec.Identity, error) {
	identity, err := s.codec.Decode(externalID)
	if err != nil {
		logger.Warn("Failed to decode external id", nil)
		return idcodec.Identity{}, apperrors.NewServiceError("decryption error", err)
	}
	return identity, nil
}

// Search validates the RUT against the national registry and, when every
// check passes, persists the registry data and moves the flow to DGI_OK.
// Input checks fail before any store or registry call.
func (s *onboardingService) Search(ctx context.Context, userID, rut string) ([]SearchResult, error) {
	parts := strings.Split(userID, "-")
	if len(parts) != 2 {
		return nil, apperrors.NewBusinessError(apperrors.DocumentInvalidUserID,
			fmt.Sprintf("Identificador de usuario inválido: %s", userID))
	}
	if parts[1] != rut {
		return nil, apperrors.NewBusinessError(apperrors.DocumentsMismatch,
			"El RUT no coincide con el identificador de usuario")
	}
	ci := parts[0]

	isClient, err := s.repo.IsBankClient(rut)
	if err != nil {
		return nil, err
	}
	if isClient {
		s.auditError(rut, ci, model.StatusSearchError, processSearch)
		return nil, apperrors.NewBusinessError(apperrors.OnboardingAlreadyClient,
			"El RUT ya es cliente del banco")
	}

	status, err := s.repo.GetStatus(rut, ci)
	if err != nil {
		return nil, err
	}
	if model.FinalStatuses[status] {
		s.auditError(rut, ci, model.StatusSearchError, processSearch)
		return nil, apperrors.NewBusinessError(apperrors.OnboardingWrongStatus,
			"El alta ya se encuentra finalizada")
	}

	info, err := s.registry.GetBusinessInformation(ctx, rut)
	if err != nil {
		return nil, apperrors.NewServiceError("failed to query the tax registry", err)
	}

	if info.CertificateExpiration.Before(time.Now()) {
		s.auditError(rut, ci, model.StatusSearchError, processSearch)
		return nil, apperrors.NewBusinessError(apperrors.OnboardingCertificateExpired,
			"El certificado DGI se encuentra vencido")
	}

	if s.cfg.ValidateLegalName {
		if err := s.validateLegalName(rut, ci, info.Name); err != nil {
			return nil, err
		}
	}

	if err := s.repo.SaveBusinessInformation(rut, ci, info.Name, info.CertificateExpiration); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(rut, ci, model.StatusDGIOK); err != nil {
		return nil, err
	}
	if err := s.audits.AuditStatusChange(rut, ci, model.NewStatus(model.StatusDGIOK, processSearch)); err != nil {
		return nil, err
	}

	logger.Info("Registry search completed", map[string]interface{}{
		"rut":    rut,
		"status": model.StatusDGIOK,
	})

	return []SearchResult{{
		LegalName:             info.Name,
		RUT:                   info.RUT,
		CertificateExpiration: info.CertificateExpiration,
		LegalAddress:          info.LegalAddress,
	}}, nil
}

// validateLegalName applies the pattern check and, when an owner with a
// registered name exists, the name similarity check. A record without an
// owner, or an owner whose name has not been captured yet, skips the
// similarity half.
func (s *onboardingService) validateLegalName(rut, ci, legalName string) error {
	if !util.IsValidLegalName(legalName) {
		s.auditError(rut, ci, model.StatusSearchError, processSearch)
		return apperrors.NewBusinessError(apperrors.OnboardingNameNotAdmitted,
			"La razón social no es admitida")
	}

	owner, err := s.repo.GetOwner(rut, ci)
	if err != nil {
		if goerrors.Is(err, repository.ErrOwnerNotFound) {
			return nil
		}
		return err
	}
	if strings.TrimSpace(owner.FullName()) == "" {
		return nil
	}

	if !util.SimilarNames(owner.FullName(), legalName) {
		s.auditError(rut, ci, model.StatusSearchError, processSearch)
		return apperrors.NewBusinessError(apperrors.OnboardingNameNotAdmitted,
			"La razón social no es admitida")
	}
	return nil
}

// Create starts (or resumes) an onboarding and returns the opaque
// external id for the identity. Numeric validation happens before any
// store access.
func (s *onboardingService) Create(ctx context.Context, rut, ownerDocument, cellphone string) (string, error) {
	if !util.IsNumeric(rut) {
		return "", apperrors.NewBusinessError(apperrors.DocumentRUTNotNumeric,
			"El RUT debe contener solo dígitos")
	}
	if !util.IsNumeric(ownerDocument) {
		return "", apperrors.NewBusinessError(apperrors.DocumentCINotNumeric,
			"La cédula debe contener solo dígitos")
	}

	status, err := s.repo.GetStatus(rut, ownerDocument)
	if err != nil {
		return "", err
	}

	switch {
	case model.FinalStatuses[status]:
		s.auditError(rut, ownerDocument, model.StatusCreateError, processCreate)
		return "", apperrors.NewBusinessError(apperrors.OnboardingFinalStatus,
			"El alta ya se encuentra finalizada")

	case status == model.StatusIngreso:
		// Resumed flow: flag it and keep the existing row.
		if err := s.repo.UpdateStatus(rut, ownerDocument, model.StatusRetoma); err != nil {
			return "", err
		}
		if err := s.audits.AuditStatusChange(rut, ownerDocument, model.NewStatus(model.StatusRetoma, processCreate)); err != nil {
			return "", err
		}

	default:
		nb := &model.NonBusiness{
			BusinessDocument:     rut,
			BusinessCountry:      countryUruguay,
			BusinessDocumentType: documentTypeRUT,
			PersonDocument:       ownerDocument,
			PersonCountry:        countryUruguay,
			PersonDocumentType:   documentTypeCI,
			Cellphone:            cellphone,
			Status:               model.StatusIngreso,
			Owner: &model.Owner{
				Document:     ownerDocument,
				Country:      countryUruguay,
				DocumentType: documentTypeCI,
			},
		}
		if err := s.repo.Create(nb); err != nil {
			return "", err
		}
		if err := s.audits.AuditStatusChange(rut, ownerDocument, model.NewStatus(model.StatusIngreso, processCreate)); err != nil {
			return "", err
		}
	}

	externalID, err := s.codec.Encode(idcodec.Identity{
		BusinessDocument:     rut,
		BusinessCountry:      countryUruguay,
		BusinessDocumentType: documentTypeRUT,
		PersonDocument:       ownerDocument,
		PersonCountry:        countryUruguay,
		PersonDocumentType:   documentTypeCI,
	})
	if err != nil {
		return "", apperrors.NewServiceError("failed to build external id", err)
	}
	return externalID, nil
}

// Patch applies up to four independent updates, each gated only by the
// presence of its field. A failure in one update aborts the rest.
func (s *onboardingService) Patch(ctx context.Context, externalID string, data PatchData) error {
	identity, err := s.resolveIdentity(externalID)
	if err != nil {
		return err
	}
	rut, ci := identity.BusinessDocument, identity.PersonDocument

	if data.CommercialName != "" {
		if err := s.repo.UpdateCommercialName(rut, ci, data.CommercialName); err != nil {
			return err
		}
	}

	if data.BranchID != nil {
		if err := s.repo.UpdateBranch(rut, ci, *data.BranchID); err != nil {
			return err
		}
	}

	if data.FormationDate != nil {
		if doc := findBPSDocument(data.LegalDocuments); doc != nil {
			err := s.repo.UpdateFormationData(rut, ci, repository.FormationData{
				FormationDate: *data.FormationDate,
				IssueDate:     doc.IssueDate,
				IssueNumber:   doc.Number,
			})
			if err != nil {
				return err
			}
		}
	}

	if data.User != nil {
		err := s.passwords.CreateTemporaryPassword(ctx, rut, ci, data.User.Password, s.cfg.PasswordTTL)
		if err != nil {
			return err
		}
	}

	return nil
}

// findBPSDocument returns the first BPS registration document, or nil.
// An absent or empty document list makes the formation update a no-op.
func findBPSDocument(docs []LegalDocumentInput) *LegalDocumentInput {
	for i := range docs {
		if docs[i].Type == model.LegalDocumentBPSRegistration {
			return &docs[i]
		}
	}
	return nil
}

func (s *onboardingService) PatchEconomicData(ctx context.Context, externalID string, data *model.EconomicData) error {
	identity, err := s.resolveIdentity(externalID)
	if err != nil {
		return err
	}
	rut, ci := identity.BusinessDocument, identity.PersonDocument

	if err := s.repo.UpdateEconomicData(rut, ci, data, s.cfg.IncomeThreshold); err != nil {
		s.auditError(rut, ci, model.StatusEconomicError, processEconomic)
		return err
	}
	return s.audits.AuditStatusChange(rut, ci, model.NewStatus(model.StatusEconomicOK, processEconomic))
}

// CreateAddress persists the business address. Malformed numeric ids in
// the payload surface as raw parse errors without an audit row.
func (s *onboardingService) CreateAddress(ctx context.Context, externalID string, addr *model.AddressData) error {
	identity, err := s.resolveIdentity(externalID)
	if err != nil {
		return err
	}
	rut, ci := identity.BusinessDocument, identity.PersonDocument

	if err := s.repo.CreateAddress(rut, ci, addr); err != nil {
		var se *apperrors.ServiceError
		if goerrors.As(err, &se) {
			s.auditError(rut, ci, model.StatusAddressError, processAddress)
		}
		return err
	}
	return s.audits.AuditStatusChange(rut, ci, model.NewStatus(model.StatusAddressOK, processAddress))
}

// CreateContactDetail validates and stores one contact channel. Each
// failure path carries its own business-error code; a blacklisted mail
// still leaves an audit row behind.
func (s *onboardingService) CreateContactDetail(ctx context.Context, externalID string, contact ContactInput) error {
	identity, err := s.resolveIdentity(externalID)
	if err != nil {
		return err
	}
	rut, ci := identity.BusinessDocument, identity.PersonDocument

	switch contact.Type {
	case model.ContactTypeEmail:
		if contact.Value == "" {
			return apperrors.NewBusinessError(apperrors.ContactEmptyMail,
				"El mail no puede ser vacío")
		}
		if !util.IsValidMail(contact.Value) {
			return apperrors.NewBusinessError(apperrors.ContactInvalidMailPattern,
				"El formato del mail es inválido")
		}
		blocked, err := s.blacklist.IsBlacklisted(ctx, contact.Value)
		if err != nil {
			return apperrors.NewServiceError("failed to check mail blacklist", err)
		}
		if blocked {
			s.auditError(rut, ci, model.StatusContactError, processContact)
			return apperrors.NewBusinessError(apperrors.ContactMailBlacklisted,
				"La casilla de mail no es admitida")
		}
		if err := s.repo.UpdateMail(rut, ci, contact.Value); err != nil {
			return err
		}

	case model.ContactTypeMobile:
		if contact.Value == "" {
			return apperrors.NewBusinessError(apperrors.ContactEmptyMobile,
				"El celular no puede ser vacío")
		}
		if !util.IsValidMobile(contact.Value) {
			return apperrors.NewBusinessError(apperrors.ContactInvalidMobile,
				"El formato del celular es inválido")
		}
		if err := s.repo.UpdateMobile(rut, ci, contact.Value); err != nil {
			return err
		}

	default:
		return apperrors.NewBusinessError(apperrors.ContactInvalidType,
			fmt.Sprintf("Tipo de contacto desconocido: %s", contact.Type))
	}

	if err := s.repo.UpdateStatus(rut, ci, model.StatusContactOK); err != nil {
		return err
	}
	return s.audits.AuditStatusChange(rut, ci, model.NewStatus(model.StatusContactOK, processContact))
}

func (s *onboardingService) GetByID(ctx context.Context, externalID string, includeOwner, includeContacts bool) (*model.NonBusiness, error) {
	identity, err := s.resolveIdentity(externalID)
	if err != nil {
		return nil, err
	}

	nb, err := s.repo.GetNonBusiness(identity.BusinessDocument, identity.PersonDocument, includeOwner, includeContacts)
	if err != nil {
		return nil, err
	}
	if nb == nil {
		return nil, apperrors.NewBusinessError(apperrors.OnboardingNotFound,
			"El alta no existe")
	}
	return nb, nil
}

// UpdateTerms records the terms acceptance in both stores: the version
// on the relational row, the signed receipt in the document store.
func (s *onboardingService) UpdateTerms(ctx context.Context, externalID, version string) error {
	identity, err := s.resolveIdentity(externalID)
	if err != nil {
		return err
	}
	rut, ci := identity.BusinessDocument, identity.PersonDocument
	acceptedAt := time.Now()

	if err := s.repo.UpdateTerms(rut, ci, version, acceptedAt); err != nil {
		s.auditError(rut, ci, model.StatusTermsError, processTerms)
		return err
	}
	if err := s.passwords.CreateTermsReceipt(ctx, rut, ci, version, acceptedAt); err != nil {
		return err
	}
	return s.audits.AuditStatusChange(rut, ci, model.NewStatus(model.StatusTermsOK, processTerms))
}

// auditError records a workflow failure. The audit itself is best
// effort; a failed insert must not mask the original error.
func (s *onboardingService) auditError(rut, ci, statusID, process string) {
	if err := s.audits.AuditStatusChange(rut, ci, model.NewStatus(statusID, process)); err != nil {
		logger.Warn("Failed to write error audit", map[string]interface{}{
			"rut":    rut,
			"status": statusID,
		})
	}
}
