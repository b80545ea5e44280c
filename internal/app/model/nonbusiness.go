package model

import (
	"time"

	"gorm.io/gorm"
)

// Legal document types carried by the registry.
const (
	LegalDocumentBPSRegistration = "BPS_REGISTRATION"
	LegalDocumentDGICertificate  = "DGI_CERTIFICATE"
)

// Contact detail types.
const (
	ContactTypeEmail  = "EMAIL"
	ContactTypeMobile = "MOBILE"
)

// NonBusiness is a unipersonal business being onboarded.
type NonBusiness struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Identity tuple. The pair (document, country, type) keys every
	// operation against the core store.
	BusinessDocument     string `gorm:"size:12;not null;index:idx_non_businesses_identity" json:"business_document"` // RUT
	BusinessCountry      int    `gorm:"not null;default:858" json:"business_country"`
	BusinessDocumentType int    `gorm:"not null" json:"business_document_type"`
	PersonDocument       string `gorm:"size:10;not null;index" json:"person_document"` // CI
	PersonCountry        int    `gorm:"not null;default:858" json:"person_country"`
	PersonDocumentType   int    `gorm:"not null" json:"person_document_type"`

	LegalName      string `gorm:"size:100" json:"legal_name"`
	CommercialName string `gorm:"size:100" json:"commercial_name"`
	Cellphone      string `gorm:"size:20" json:"cellphone"`
	BranchID       *int   `json:"branch_id,omitempty"`

	Status string `gorm:"size:20;index" json:"status"`

	// Formation and BPS issue dates travel to the legacy core as
	// yyyyMMdd strings, so they are stored in that shape.
	FormationDate string `gorm:"size:8" json:"formation_date,omitempty"`
	BPSIssueDate  string `gorm:"size:8" json:"bps_issue_date,omitempty"`

	// Economic data captured during the flow.
	EconomicActivityID *int    `json:"economic_activity_id,omitempty"`
	TaxConditionID     *int    `json:"tax_condition_id,omitempty"`
	AnnualIncome       float64 `json:"annual_income"`
	IncomeDate         string  `gorm:"size:8" json:"income_date"` // yyyyMMdd
	PackageAssignment  string  `gorm:"size:30" json:"package_assignment"`

	TermsVersion    string     `gorm:"size:20" json:"terms_version"`
	TermsAcceptedAt *time.Time `json:"terms_accepted_at,omitempty"`

	Owner          *Owner          `gorm:"foreignKey:NonBusinessID" json:"owner,omitempty"`
	LegalDocuments []LegalDocument `gorm:"foreignKey:NonBusinessID" json:"legal_documents,omitempty"`
	Contacts       []ContactDetail `gorm:"foreignKey:NonBusinessID" json:"contacts,omitempty"`
}

func (NonBusiness) TableName() string {
	return "non_businesses"
}

// Owner is the natural person behind the unipersonal.
type Owner struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NonBusinessID uint   `gorm:"not null;uniqueIndex" json:"non_business_id"`
	Document      string `gorm:"size:10;not null" json:"document"`
	Country       int    `gorm:"not null;default:858" json:"country"`
	DocumentType  int    `gorm:"not null" json:"document_type"`
	FirstName     string `gorm:"size:60" json:"first_name"`
	LastName      string `gorm:"size:60" json:"last_name"`
}

func (Owner) TableName() string {
	return "non_business_owners"
}

// FullName joins first and last name for similarity checks.
func (o *Owner) FullName() string {
	if o.FirstName == "" {
		return o.LastName
	}
	if o.LastName == "" {
		return o.FirstName
	}
	return o.FirstName + " " + o.LastName
}

// LegalDocument is a registry document attached to the business.
type LegalDocument struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NonBusinessID uint   `gorm:"not null;index" json:"non_business_id"`
	Type          string `gorm:"size:30;not null" json:"type"`
	Number        string `gorm:"size:30" json:"number"`

	// Stored as yyyyMMdd, the shape the legacy core uses.
	IssueDate      string `gorm:"size:8" json:"issue_date"`
	ExpirationDate string `gorm:"size:8" json:"expiration_date"`

	// Active is derived on read, never persisted.
	Active bool `gorm:"-" json:"active"`
}

func (LegalDocument) TableName() string {
	return "non_business_legal_documents"
}

// ContactDetail is a single contact channel of the business.
type ContactDetail struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NonBusinessID uint   `gorm:"not null;index" json:"non_business_id"`
	Type          string `gorm:"size:10;not null" json:"type"` // EMAIL | MOBILE
	Value         string `gorm:"size:100;not null" json:"value"`
}

func (ContactDetail) TableName() string {
	return "non_business_contacts"
}
