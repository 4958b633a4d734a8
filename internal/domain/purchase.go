package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PurchaseStatus string

const (
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusFailed    PurchaseStatus = "failed"
)

// MaxDevices is the number of devices a single purchase may be activated on.
const MaxDevices = 2

type Purchase struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string                      `gorm:"index;not null;column:email" json:"email"`
	PayPalOrderID   string                      `gorm:"uniqueIndex;not null;column:paypal_order_id" json:"paypal_order_id"`
	ActivationCodes datatypes.JSONSlice[string] `gorm:"column:activation_codes" json:"activation_codes"`
	DeviceIDs       datatypes.JSONSlice[string] `gorm:"column:device_ids" json:"device_ids"`
	Amount          float64                     `gorm:"not null;column:amount" json:"amount"`
	Status          PurchaseStatus              `gorm:"index;not null;column:status" json:"status"`
	CreatedAt       time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Purchase) TableName() string {
	return "purchase"
}

// HasCode reports whether code (already normalized) belongs to this purchase.
func (p *Purchase) HasCode(code string) bool {
	for _, c := range p.ActivationCodes {
		if c == code {
			return true
		}
	}
	return false
}

// HasDevice reports whether deviceID is already bound to this purchase.
func (p *Purchase) HasDevice(deviceID string) bool {
	for _, d := range p.DeviceIDs {
		if d == deviceID {
			return true
		}
	}
	return false
}
