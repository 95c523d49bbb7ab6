package Billing

import (
	"testing"
	"time"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time { return &t }

func uintPtr(v uint) *uint { return &v }

func activePatient(planID uint, expiresAt time.Time) Models.Patient {
	return Models.Patient{
		PlanID:        uintPtr(planID),
		PlanExpiresAt: datePtr(expiresAt),
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"100", "100"},
		{"150,00", "150"},
		{"R$ 150,00", "150"},
		{"1.234,56", "1234.56"},
		{"99.90", "99.9"},
		{" 200 ", "200"},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "%s parsed to %s", tc.in, got)
	}

	for _, bad := range []string{"", "   ", "R$", "abc", "1,2,3", "10,00,"} {
		_, err := ParsePrice(bad)
		assert.ErrorIs(t, err, ErrInvalidPrice, bad)
	}
}

func TestEffectivePriceBasicTier(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	patient := activePatient(1, asOf.AddDate(0, 6, 0))
	plan := Models.Plan{Tier: Models.TierBasic}

	price, err := EffectivePrice(patient, plan, decimal.NewFromInt(100), asOf, false)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(70)), "got %s", price)

	// A household visit this month drops the rate to 20%.
	price, err = EffectivePrice(patient, plan, decimal.NewFromInt(100), asOf, true)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(80)), "got %s", price)
}

func TestEffectivePriceFamilyTier(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	patient := activePatient(2, asOf.AddDate(1, 0, 0))
	plan := Models.Plan{Tier: Models.TierFamily}

	price, err := EffectivePrice(patient, plan, decimal.NewFromInt(200), asOf, false)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(140)), "got %s", price)

	// Usage this month does not change the family rate.
	price, err = EffectivePrice(patient, plan, decimal.NewFromInt(200), asOf, true)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(140)), "got %s", price)
}

func TestEffectivePriceCorporateTier(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	patient := activePatient(3, asOf.AddDate(0, 1, 0))
	plan := Models.Plan{Tier: Models.TierCorporate}

	price, err := EffectivePrice(patient, plan, decimal.NewFromInt(300), asOf, false)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(195)), "got %s", price)
}

func TestEffectivePriceNoPlan(t *testing.T) {
	asOf := time.Now()
	patient := Models.Patient{}

	price, err := EffectivePrice(patient, Models.Plan{Tier: Models.TierCorporate}, decimal.NewFromInt(100), asOf, false)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(100)), "private-pay patients always pay list price, got %s", price)
}

func TestEffectivePriceExpiredPlan(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	patient := activePatient(1, asOf.AddDate(0, 0, -1))
	plan := Models.Plan{Tier: Models.TierBasic}

	price, err := EffectivePrice(patient, plan, decimal.NewFromInt(100), asOf, false)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(100)), "got %s", price)

	// Missing expiration counts as expired even with a plan assigned.
	patient.PlanExpiresAt = nil
	price, err = EffectivePrice(patient, plan, decimal.NewFromInt(100), asOf, false)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(100)), "got %s", price)
}

func TestEffectivePriceExpiresToday(t *testing.T) {
	// An expiration on asOf's calendar date still counts as active; only
	// strictly-before dates expire.
	asOf := time.Date(2026, 3, 10, 23, 30, 0, 0, time.Local)
	patient := activePatient(1, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local))
	plan := Models.Plan{Tier: Models.TierBasic}

	price, err := EffectivePrice(patient, plan, decimal.NewFromInt(100), asOf, false)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(70)), "got %s", price)
}

func TestEffectivePriceUnknownTier(t *testing.T) {
	asOf := time.Now()
	patient := activePatient(9, asOf.AddDate(1, 0, 0))
	plan := Models.Plan{Name: "PLANO PROMOCIONAL"}

	price, err := EffectivePrice(patient, plan, decimal.NewFromInt(100), asOf, false)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(100)), "unknown tiers get no discount, got %s", price)
}

func TestEffectivePriceNegative(t *testing.T) {
	asOf := time.Now()
	patient := activePatient(1, asOf.AddDate(1, 0, 0))
	plan := Models.Plan{Tier: Models.TierBasic}

	price, err := EffectivePrice(patient, plan, decimal.NewFromInt(-50), asOf, false)
	assert.ErrorIs(t, err, ErrNegativePrice)
	assert.True(t, price.Equal(decimal.NewFromInt(-50)), "negative input propagates unclamped, got %s", price)
}

func TestEffectivePriceRounding(t *testing.T) {
	asOf := time.Now()
	patient := activePatient(1, asOf.AddDate(1, 0, 0))
	plan := Models.Plan{Tier: Models.TierCorporate}

	price, err := EffectivePrice(patient, plan, decimal.RequireFromString("99.99"), asOf, false)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("64.99")), "got %s", price)
}

func TestNormalizeTier(t *testing.T) {
	assert.Equal(t, Models.TierBasic, Models.NormalizeTier("ESSENCIAL"))
	assert.Equal(t, Models.TierBasic, Models.NormalizeTier("Plano Essencial"))
	assert.Equal(t, Models.TierFamily, Models.NormalizeTier("MASTER"))
	assert.Equal(t, Models.TierFamily, Models.NormalizeTier("plano master familia"))
	assert.Equal(t, Models.TierCorporate, Models.NormalizeTier("EMPRESARIAL"))
	assert.Equal(t, Models.TierUnknown, Models.NormalizeTier("PROMOCIONAL"))
	assert.Equal(t, Models.TierUnknown, Models.NormalizeTier(""))
}

func TestPlanStatusLabel(t *testing.T) {
	asOf := time.Now()

	assert.Equal(t, "PARTICULAR", PlanStatusLabel(Models.Patient{}, asOf))
	assert.Equal(t, "VENCIDO", PlanStatusLabel(activePatient(1, asOf.AddDate(0, 0, -3)), asOf))
	assert.Equal(t, "ATIVO", PlanStatusLabel(activePatient(1, asOf.AddDate(0, 3, 0)), asOf))
}

func TestDiscountPercentage(t *testing.T) {
	asOf := time.Now()
	patient := activePatient(1, asOf.AddDate(1, 0, 0))

	pct := DiscountPercentage(patient, Models.Plan{Tier: Models.TierCorporate}, asOf, false)
	assert.True(t, pct.Equal(decimal.NewFromInt(35)), "got %s", pct)

	pct = DiscountPercentage(Models.Patient{}, Models.Plan{Tier: Models.TierCorporate}, asOf, false)
	assert.True(t, pct.IsZero(), "got %s", pct)
}
