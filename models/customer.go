package models

import (
	"strings"
	"time"
)

type Customer struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:200;not null" json:"name"`
	Phone   string `gorm:"size:45" json:"phone,omitempty"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Address string `gorm:"size:255" json:"address,omitempty"`
	Notes   string `gorm:"size:500" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Customer) TableName() string { return CustomerTable }

// HasName reports whether the customer carries a usable (non-blank) name.
// Create/save paths reject customers without one before touching storage.
func (c *Customer) HasName() bool {
	return strings.TrimSpace(c.Name) != ""
}
