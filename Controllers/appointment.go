package Controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Billing"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/SSE"

	"github.com/gin-gonic/gin"
)

// BookAppointment schedules a consultation or exam. The table price is
// re-run through the discount calculator against the patient's live plan
// state; whatever "final price" the client sent is advisory only and never
// persisted.
func BookAppointment(c *gin.Context) {
	var input struct {
		PatientID   uint   `json:"patient_id"`
		PatientName string `json:"patient_name"`
		Doctor      string `json:"doctor" binding:"required"`
		Kind        string `json:"kind"`
		ExamName    string `json:"exam_name"`
		Date        string `json:"date" binding:"required"`
		Hour        string `json:"hour"`
		ListPrice   string `json:"list_price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listPrice, err := Billing.ParsePrice(input.ListPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := Models.AppointmentKind(input.Kind)
	if kind != Models.KindExam {
		kind = Models.KindConsultation
	}

	appointment := Models.Appointment{
		PatientName: input.PatientName,
		Doctor:      input.Doctor,
		Kind:        kind,
		ExamName:    input.ExamName,
		Date:        input.Date,
		Hour:        input.Hour,
		Price:       listPrice,
		Status:      Models.AppointmentWaiting,
	}

	if input.PatientID != 0 {
		patient, err := Models.GetPatientByID(input.PatientID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		final, err := Billing.QuotePrice(Models.DB, patient, listPrice, time.Now())
		if err != nil {
			log.Println(err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		appointment.PatientID = patient.ID
		appointment.PatientName = patient.FullName
		appointment.Price = final
	}

	if err := Models.DB.Create(&appointment).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment Booked Successfully", "appointment": appointment})
	SSE.Broadcaster.Broadcast("refresh")
}

func FetchAgenda(c *gin.Context) {
	date := c.Query("date")
	query := Models.DB.Order("date, hour")
	if date != "" {
		query = query.Where("date = ?", date)
	}
	var appointments []Models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func FetchAppointmentsByPatientID(c *gin.Context) {
	var input struct {
		PatientID uint `json:"patient_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var appointments []Models.Appointment
	if err := Models.DB.Where("patient_id = ?", input.PatientID).Order("date desc, hour desc").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// MarkAppointmentAsCompleted records the visit, which counts as household
// usage for the ESSENCIAL monthly rule from this moment on.
func MarkAppointmentAsCompleted(c *gin.Context) {
	var input struct {
		AppointmentID uint `json:"appointment_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Models.DB.Model(&Models.Appointment{}).Where("id = ?", input.AppointmentID).
		Update("status", Models.AppointmentDone).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked Successfully"})
}

func CancelAppointment(c *gin.Context) {
	var input struct {
		AppointmentID uint `json:"appointment_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Models.DB.Model(&Models.Appointment{}).Where("id = ?", input.AppointmentID).
		Update("status", Models.AppointmentCancelled).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cancelled Successfully"})
	SSE.Broadcaster.Broadcast("refresh")
}
