package Controllers

import (
	"net/http"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Middleware"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/gin-gonic/gin"
)

func AddClinicalNote(c *gin.Context) {
	var input struct {
		PatientID uint   `json:"patient_id" binding:"required"`
		Content   string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := Middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	note := Models.ClinicalNote{
		PatientID: input.PatientID,
		Author:    user.Username,
		Content:   input.Content,
	}
	if err := Models.DB.Create(&note).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note Added Successfully", "note": note})
}

func FetchClinicalNotes(c *gin.Context) {
	var input struct {
		PatientID uint `json:"patient_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var notes []Models.ClinicalNote
	if err := Models.DB.Where("patient_id = ?", input.PatientID).Order("created_at desc").Find(&notes).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}

func AddPrescription(c *gin.Context) {
	var input struct {
		PatientID   uint   `json:"patient_id" binding:"required"`
		Medications string `json:"medications" binding:"required"`
		Guidance    string `json:"guidance"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := Middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	prescription := Models.Prescription{
		PatientID:   input.PatientID,
		Author:      user.Username,
		Medications: input.Medications,
		Guidance:    input.Guidance,
	}
	if err := Models.DB.Create(&prescription).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prescription Added Successfully", "prescription": prescription})
}

func FetchPrescriptions(c *gin.Context) {
	var input struct {
		PatientID uint `json:"patient_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var prescriptions []Models.Prescription
	if err := Models.DB.Where("patient_id = ?", input.PatientID).Order("created_at desc").Find(&prescriptions).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prescriptions)
}
