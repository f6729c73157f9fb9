package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Payment is a rent payment record. The portal API returns the tenant
// reference either populated as an embedded document or as a bare id, and
// legacy rows carry string or missing amounts, so decoding is tolerant: an
// unusable amount becomes 0 and an unusable reference becomes empty rather
// than failing the whole fetch.
type Payment struct {
	ID            string    `json:"_id"`
	Amount        float64   `json:"amount"`
	PaymentDate   time.Time `json:"paymentDate"`
	PaymentMethod string    `json:"paymentMethod"`
	TenantID      string    `json:"tenantId"`
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            string          `json:"_id"`
		Amount        json.RawMessage `json:"amount"`
		PaymentDate   json.RawMessage `json:"paymentDate"`
		PaymentMethod string          `json:"paymentMethod"`
		TenantID      json.RawMessage `json:"tenantId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.ID = raw.ID
	p.PaymentMethod = raw.PaymentMethod
	p.Amount = coerceAmount(raw.Amount)
	p.PaymentDate = coerceDate(raw.PaymentDate)
	p.TenantID = coerceTenantRef(raw.TenantID)
	return nil
}

// coerceDate accepts an RFC 3339 timestamp; a missing or malformed date
// becomes the zero time, which falls outside any recent window.
func coerceDate(raw json.RawMessage) time.Time {
	if len(raw) == 0 {
		return time.Time{}
	}

	var date time.Time
	if err := json.Unmarshal(raw, &date); err != nil {
		return time.Time{}
	}
	return date
}

// coerceAmount accepts a JSON number or a numeric string; anything else
// (missing, null, malformed) becomes 0 so the payment still renders.
func coerceAmount(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var amount float64
	if err := json.Unmarshal(raw, &amount); err == nil {
		return amount
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if parsed, err := strconv.ParseFloat(text, 64); err == nil {
			return parsed
		}
	}

	return 0
}

// coerceTenantRef accepts a bare id string or a populated tenant document;
// anything else resolves to the empty reference (an orphaned payment).
func coerceTenantRef(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}

	var populated struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &populated); err == nil {
		return populated.ID
	}

	return ""
}
