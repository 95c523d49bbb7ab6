package Models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlanTier is the closed set of discount categories a plan can belong to.
type PlanTier string

const (
	TierBasic     PlanTier = "ESSENCIAL"
	TierFamily    PlanTier = "MASTER"
	TierCorporate PlanTier = "EMPRESARIAL"
	TierUnknown   PlanTier = ""
)

// NormalizeTier maps free-form plan names onto the tier set. Legacy rows
// store names like "Ultramed Master Familiar", so matching is by
// case-insensitive token. Anything unrecognized stays TierUnknown, which
// the discount table resolves to 0%.
func NormalizeTier(name string) PlanTier {
	upper := strings.ToUpper(name)
	switch {
	case strings.Contains(upper, string(TierBasic)):
		return TierBasic
	case strings.Contains(upper, string(TierFamily)):
		return TierFamily
	case strings.Contains(upper, string(TierCorporate)):
		return TierCorporate
	}
	return TierUnknown
}

type Plan struct {
	gorm.Model
	Name        string          `json:"name" gorm:"unique"`
	Description string          `json:"description"`
	Tier        PlanTier        `json:"tier"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric"`
	MaxPeople   int             `json:"max_people" gorm:"default:1"`
}

// EffectiveTier prefers the stored tier and falls back to the name for
// rows imported before the tier column existed.
func (plan *Plan) EffectiveTier() PlanTier {
	if plan.Tier != TierUnknown {
		return plan.Tier
	}
	return NormalizeTier(plan.Name)
}

func GetPlanByID(id uint) (Plan, error) {
	var plan Plan
	if err := DB.First(&plan, id).Error; err != nil {
		return plan, err
	}
	return plan, nil
}
