package Controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Billing"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func FetchPatients(c *gin.Context) {
	var patients []Models.Patient
	if err := Models.DB.Where("is_active = ?", true).Order("full_name").Find(&patients).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patients)
}

// SearchPatients backs the front-desk autocomplete: case-insensitive
// substring match on name or national id.
func SearchPatients(c *gin.Context) {
	term := c.Query("term")
	var patients []Models.Patient
	if err := Models.DB.
		Where("LOWER(full_name) LIKE LOWER(?) OR national_id LIKE ?", "%"+term+"%", "%"+term+"%").
		Limit(10).Find(&patients).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := make([]gin.H, 0, len(patients))
	for _, patient := range patients {
		results = append(results, gin.H{"id": patient.ID, "nome": patient.FullName, "cpf": patient.NationalID})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}

func CreatePatient(c *gin.Context) {
	var patient Models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patient.IsActive = true
	if err := Models.DB.Create(&patient).Error; err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient Created Successfully", "patient": patient})
}

func UpdatePatient(c *gin.Context) {
	var patient Models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Models.DB.Where("id = ?", patient.ID).First(&Models.Patient{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve patient"})
		}
		return
	}
	if err := Models.DB.Save(&patient).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient Updated Successfully"})
}

// DeactivatePatient flips the active flag; registry rows are never
// hard-deleted.
func DeactivatePatient(c *gin.Context) {
	var input struct {
		ID uint `json:"id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Models.DB.Model(&Models.Patient{}).Where("id = ?", input.ID).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient Deactivated Successfully"})
}

// PriceDetail is the front-desk lookup used while quoting: plan status
// label and the discount the patient would get right now.
func PriceDetail(c *gin.Context) {
	var input struct {
		PatientID uint `json:"patient_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := Models.GetPatientByID(input.PatientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	now := time.Now()
	var plan Models.Plan
	if patient.PlanID != nil {
		if err := Models.DB.First(&plan, *patient.PlanID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve plan"})
			return
		}
	}
	used, err := Billing.HouseholdUsedThisMonth(Models.DB, patient, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patient_id":          patient.ID,
		"plan_status_label":   Billing.PlanStatusLabel(patient, now),
		"discount_percentage": Billing.DiscountPercentage(patient, plan, now, used),
		"national_id":         patient.NationalID,
	})
}
