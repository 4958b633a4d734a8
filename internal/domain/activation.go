package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActivationRecord is the per-device unlock state held in the activation
// store. Absence of a record means the device is locked.
type ActivationRecord struct {
	DeviceID    string    `json:"device_id"`
	PurchaseID  uuid.UUID `json:"purchase_id"`
	Activated   bool      `json:"activated"`
	ActivatedAt time.Time `json:"activated_at"`
}

var (
	// ErrCodeNotFound means no completed purchase matches the email+code pair.
	ErrCodeNotFound = errors.New("activation code and email do not match any purchase")
	// ErrStoreUnavailable wraps query/update failures against the purchase store.
	ErrStoreUnavailable = errors.New("purchase store unavailable")
)

// DeviceLimitError is returned when a purchase is already bound to the
// maximum number of devices. The limit is part of the message shown to the
// purchaser.
type DeviceLimitError struct {
	Limit int
}

func (e *DeviceLimitError) Error() string {
	return fmt.Sprintf("this code has been used on %d devices already", e.Limit)
}

// ValidationError reports rejected input before any store call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
