package Billing

import (
	"errors"
	"strings"
	"time"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice = errors.New("list price must not be negative")
	ErrInvalidPrice  = errors.New("price is not a valid number")
)

var (
	rateBasic = decimal.NewFromFloat(0.30)
	// A household that already used the clinic this calendar month drops
	// from 30% to 20% on the ESSENCIAL tier.
	rateBasicUsed = decimal.NewFromFloat(0.20)
	rateFamily    = decimal.NewFromFloat(0.30)
	rateCorporate = decimal.NewFromFloat(0.35)
)

// ParsePrice normalizes front-desk price input. Values arrive in Brazilian
// locale ("1.234,56", "150,00") as often as not; comma is taken as the
// decimal separator and dots before it as thousands separators. Empty or
// malformed input is rejected, never silently zeroed.
func ParsePrice(text string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "R$")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	if strings.Contains(cleaned, ",") {
		if strings.Count(cleaned, ",") > 1 {
			return decimal.Zero, ErrInvalidPrice
		}
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	return price, nil
}

// DateOnly truncates a timestamp to its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// PlanActive reports whether the patient has a plan whose expiration date
// is on or after asOf. A nil expiration counts as expired.
func PlanActive(patient Models.Patient, asOf time.Time) bool {
	if patient.PlanID == nil {
		return false
	}
	if patient.PlanExpiresAt == nil {
		return false
	}
	return !DateOnly(*patient.PlanExpiresAt).Before(DateOnly(asOf))
}

// DiscountRate resolves the discount for a patient, first match wins:
//  1. no plan: 0 (private-pay patients never get a discount)
//  2. expiration missing or strictly before asOf: 0
//  3. by tier: ESSENCIAL 30% (20% once the household already has a paid
//     invoice or completed visit this month), MASTER 30%, EMPRESARIAL 35%
//
// Unrecognized tiers fall through to 0.
func DiscountRate(patient Models.Patient, plan Models.Plan, asOf time.Time, usedThisMonth bool) decimal.Decimal {
	if !PlanActive(patient, asOf) {
		return decimal.Zero
	}
	switch plan.EffectiveTier() {
	case Models.TierBasic:
		if usedThisMonth {
			return rateBasicUsed
		}
		return rateBasic
	case Models.TierFamily:
		return rateFamily
	case Models.TierCorporate:
		return rateCorporate
	}
	return decimal.Zero
}

// EffectivePrice computes listPrice x (1 - discount). Pure: safe to call
// repeatedly for quotes without touching usage history. A negative list
// price is a caller bug; it propagates unchanged alongside an error
// instead of being clamped.
func EffectivePrice(patient Models.Patient, plan Models.Plan, listPrice decimal.Decimal, asOf time.Time, usedThisMonth bool) (decimal.Decimal, error) {
	if listPrice.IsNegative() {
		return listPrice, ErrNegativePrice
	}
	rate := DiscountRate(patient, plan, asOf, usedThisMonth)
	return listPrice.Mul(decimal.NewFromInt(1).Sub(rate)).Round(2), nil
}

// PlanStatusLabel is what the price-detail endpoint shows the front desk.
func PlanStatusLabel(patient Models.Patient, asOf time.Time) string {
	if patient.PlanID == nil {
		return "PARTICULAR"
	}
	if !PlanActive(patient, asOf) {
		return "VENCIDO"
	}
	return "ATIVO"
}

// DiscountPercentage renders the rate as a whole percentage for display.
func DiscountPercentage(patient Models.Patient, plan Models.Plan, asOf time.Time, usedThisMonth bool) decimal.Decimal {
	return DiscountRate(patient, plan, asOf, usedThisMonth).Mul(decimal.NewFromInt(100))
}
