package model

import "time"

// Onboarding status identifiers. These are the exact values the legacy
// core stores, so they stay as-is.
const (
	StatusIngreso   = "INGRESO"   // flow started
	StatusRetoma    = "RETOMA"    // flow resumed after abandonment
	StatusDGIOK     = "DGI_OK"    // registry validation passed
	StatusContactOK = "NB_CNT_OK" // contact data captured
	StatusProcesado = "PROCESADO" // final: account opened
	StatusAnulado   = "ANULADO"   // final: cancelled

	StatusEconomicOK = "NB_ECO_OK"
	StatusAddressOK  = "NB_DIR_OK"
	StatusTermsOK    = "NB_TYC_OK"

	StatusSearchError   = "NB_ESI_ERR" // registry/search stage failure
	StatusCreateError   = "NB_CRE_ERR"
	StatusContactError  = "NB_CNT_ERR"
	StatusEconomicError = "NB_ECO_ERR"
	StatusAddressError  = "NB_DIR_ERR"
	StatusTermsError    = "NB_TYC_ERR"
)

// DefaultChannelID is the digital onboarding channel.
const DefaultChannelID = 40

// FinalStatuses are states from which the flow cannot be restarted.
var FinalStatuses = map[string]bool{
	StatusProcesado: true,
	StatusAnulado:   true,
}

// Status is the value object written to the audit trail. Constructed
// fresh per event, never persisted on its own.
type Status struct {
	ID        string
	Process   string
	ChannelID int
	Message   string
}

// NewStatus builds a Status on the default channel with an empty message.
func NewStatus(id, process string) Status {
	return Status{
		ID:        id,
		Process:   process,
		ChannelID: DefaultChannelID,
		Message:   "",
	}
}

// OnboardingAudit is one row of the status-change audit trail. The two
// Reserved columns mirror placeholder arguments of the legacy stored
// procedure; they always hold "" and 0.
type OnboardingAudit struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BusinessDocument string `gorm:"size:12;not null;index" json:"business_document"`
	PersonDocument   string `gorm:"size:10;not null" json:"person_document"`
	StatusID         string `gorm:"size:20;not null" json:"status_id"`
	Process          string `gorm:"size:40;not null" json:"process"`
	ChannelID        int    `gorm:"not null" json:"channel_id"`
	Message          string `gorm:"size:200" json:"message"`

	ReservedText string `gorm:"size:1;default:''" json:"-"`
	ReservedFlag int    `gorm:"default:0" json:"-"`
}

func (OnboardingAudit) TableName() string {
	return "non_business_status_audit"
}
