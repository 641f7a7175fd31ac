package models

import (
	"encoding/json"
	"fmt"
)

// PaymentMethod records how a participant paid for the session.
// The zero value means the participant has not paid.
type PaymentMethod string

const (
	PaymentNone      PaymentMethod = ""
	PaymentCash      PaymentMethod = "Cash"
	PaymentETransfer PaymentMethod = "E-Transfer"
)

// ParsePaymentMethod validates a method received from a client.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentNone, PaymentCash, PaymentETransfer:
		return PaymentMethod(s), nil
	default:
		return PaymentNone, fmt.Errorf("unknown payment method %q", s)
	}
}

// Paid reports whether a method has been recorded.
func (m PaymentMethod) Paid() bool {
	return m != PaymentNone
}

// MarshalJSON encodes the unpaid state as null.
func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	if m == PaymentNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

// UnmarshalJSON accepts null, "" or one of the known methods.
func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = PaymentNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Participant represents one person on the session roster.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string `json:"id"`

	// Name is the display name as entered or as extracted by ingestion.
	// It may still carry list numbering ("3. Sam"); display code cleans it.
	Name string `json:"name"`

	// PaymentMethod is PaymentNone until the participant pays.
	PaymentMethod PaymentMethod `json:"paymentMethod"`

	// Note is free text, typically the E-Transfer sender name.
	Note string `json:"note,omitempty"`
}
