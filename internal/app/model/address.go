package model

import (
	"time"

	"gorm.io/gorm"
)

// Item is a generic {id, name} pair as the channels send it. IDs arrive
// as strings and are parsed to integers at the repository boundary.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AddressData is the address payload from the channel.
type AddressData struct {
	PostalCode string `json:"postal_code"`
	Country    Item   `json:"country"`
	Department Item   `json:"department"`
	City       Item   `json:"city"`
	Level1     string `json:"level1"` // street
	Level2     string `json:"level2"` // door number
	Level3     string `json:"level3"` // apartment / extra
}

// Address is the persisted business address.
type Address struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	NonBusinessID uint   `gorm:"not null;index" json:"non_business_id"`
	PostalCode    string `gorm:"size:10" json:"postal_code"`
	CountryID     int    `gorm:"not null" json:"country_id"`
	DepartmentID  int    `gorm:"not null" json:"department_id"`
	CityID        int    `gorm:"not null" json:"city_id"`
	Level1        string `gorm:"size:100" json:"level1"`
	Level2        string `gorm:"size:30" json:"level2"`
	Level3        string `gorm:"size:30" json:"level3"`
}

func (Address) TableName() string {
	return "non_business_addresses"
}

// Department is a geographic lookup row seeded from the core store.
type Department struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ISOCode string `gorm:"size:5;index" json:"iso_code"`
	Name    string `gorm:"size:60;not null" json:"name"`
}

func (Department) TableName() string {
	return "departments"
}

// DepartmentInfo is the projection returned by the departments lookup.
type DepartmentInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
