package model

import "time"

// BankClient is a projection of the central client registry, used only to
// reject onboarding attempts for documents that already bank with us.
type BankClient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Document string `gorm:"size:12;not null;uniqueIndex" json:"document"`
}

func (BankClient) TableName() string {
	return "bank_clients"
}
