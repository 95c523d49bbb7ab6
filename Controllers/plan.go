package Controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Billing"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LandingSummary feeds the public site: the plan catalog, nothing that
// needs a session.
func LandingSummary(c *gin.Context) {
	var plans []Models.Plan
	if err := Models.DB.Order("price").Find(&plans).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summaries := make([]gin.H, 0, len(plans))
	for _, plan := range plans {
		summaries = append(summaries, gin.H{
			"name":        plan.Name,
			"description": plan.Description,
			"price":       plan.Price,
			"max_people":  plan.MaxPeople,
		})
	}
	c.JSON(http.StatusOK, gin.H{"plans": summaries})
}

func FetchPlans(c *gin.Context) {
	var plans []Models.Plan
	if err := Models.DB.Find(&plans).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plans)
}

type planInput struct {
	ID          uint   `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Tier        string `json:"tier"`
	Price       string `json:"price" binding:"required"`
	MaxPeople   int    `json:"max_people"`
}

func (input planInput) toPlan() (Models.Plan, error) {
	price, err := Billing.ParsePrice(input.Price)
	if err != nil {
		return Models.Plan{}, err
	}
	tier := Models.NormalizeTier(input.Tier)
	if tier == Models.TierUnknown {
		tier = Models.NormalizeTier(input.Name)
	}
	return Models.Plan{
		Name:        input.Name,
		Description: input.Description,
		Tier:        tier,
		Price:       price,
		MaxPeople:   input.MaxPeople,
	}, nil
}

func AddPlan(c *gin.Context) {
	var input planInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := input.toPlan()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Models.DB.Create(&plan).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan Created Successfully", "plan": plan})
}

func EditPlan(c *gin.Context) {
	var input planInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := input.toPlan()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan.ID = input.ID
	if err := Models.DB.Save(&plan).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan Edited Successfully"})
}

func DeletePlan(c *gin.Context) {
	var input struct {
		PlanID uint `json:"plan_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Models.DB.Delete(&Models.Plan{}, "id = ?", input.PlanID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan Deleted Successfully"})
}

type dependentInput struct {
	FullName   string `json:"full_name" binding:"required"`
	NationalID string `json:"national_id" binding:"required"`
	Gender     string `json:"gender"`
	BirthDate  string `json:"birth_date"`
}

// SellPlan registers a household head plus dependents and assigns the plan
// to all of them in one transaction, then issues the first subscription
// invoice. Coverage only starts when that invoice is paid, so no
// expiration date is set here.
func SellPlan(c *gin.Context) {
	var input struct {
		PlanID     uint             `json:"plan_id" binding:"required"`
		Head       Models.Patient   `json:"head" binding:"required"`
		Dependents []dependentInput `json:"dependents"`
		DueDate    string           `json:"due_date"`
		Method     string           `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := Models.GetPlanByID(input.PlanID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if plan.MaxPeople > 0 && len(input.Dependents)+1 > plan.MaxPeople {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many members for this plan"})
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	head := input.Head
	head.PlanID = &plan.ID
	head.HouseholdHeadID = nil
	head.IsActive = true
	if err := tx.Create(&head).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create household head"})
		return
	}

	for _, dep := range input.Dependents {
		patient := Models.Patient{
			FullName:        dep.FullName,
			NationalID:      dep.NationalID,
			Gender:          dep.Gender,
			PlanID:          &plan.ID,
			HouseholdHeadID: &head.ID,
			IsActive:        true,
		}
		if dep.BirthDate != "" {
			if birth, err := time.Parse("2006-01-02", dep.BirthDate); err == nil {
				patient.BirthDate = &birth
			}
		}
		if err := tx.Create(&patient).Error; err != nil {
			log.Println(err)
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create dependent"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	var dueDate *time.Time
	if input.DueDate != "" {
		if due, err := time.Parse("2006-01-02", input.DueDate); err == nil {
			dueDate = &due
		}
	}

	// The subscription fee is the plan's list price; the plan discount
	// applies to services, not to the plan itself.
	invoice, err := Billing.IssueInvoice(Models.DB, head, plan.Price, dueDate, input.Method, true, false)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Household created but invoice issuance failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plan Sold Successfully",
		"head_id": head.ID,
		"invoice": invoice,
	})
}

// PlanRevenue summarizes paid subscription value per tier for the master
// panel.
func PlanRevenue(c *gin.Context) {
	var plans []Models.Plan
	if err := Models.DB.Find(&plans).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	totals := make(map[Models.PlanTier]decimal.Decimal)
	for _, plan := range plans {
		var members int64
		Models.DB.Model(&Models.Patient{}).Where("plan_id = ?", plan.ID).Count(&members)
		tier := plan.EffectiveTier()
		totals[tier] = totals[tier].Add(plan.Price.Mul(decimal.NewFromInt(members)))
	}
	c.JSON(http.StatusOK, gin.H{"revenue_by_tier": totals})
}
