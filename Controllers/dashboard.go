package Controllers

import (
	"net/http"
	"time"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Billing"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Middleware"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/gin-gonic/gin"
)

// panelByRole is the explicit role -> panel map; the dashboard endpoint
// resolves it once per request instead of keeping any session state.
var panelByRole = map[Models.Role]string{
	Models.RoleMaster:    "painel-master",
	Models.RoleDoctor:    "painel-medico",
	Models.RoleFrontDesk: "painel-colaborador",
	Models.RolePatient:   "painel-cliente",
}

func PanelForRole(role Models.Role) string {
	if panel, ok := panelByRole[role]; ok {
		return panel
	}
	return "painel-colaborador"
}

// Dashboard returns the payload for the caller's own panel.
func Dashboard(c *gin.Context) {
	user, ok := Middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	switch user.Role {
	case Models.RoleMaster:
		masterPanel(c)
	case Models.RoleDoctor:
		doctorPanel(c)
	case Models.RolePatient:
		patientPanel(c, user)
	default:
		staffPanel(c)
	}
}

func masterPanel(c *gin.Context) {
	var appointments []Models.Appointment
	Models.DB.Order("id desc").Limit(10).Find(&appointments)

	var leads []Models.Lead
	Models.DB.Order("created_at desc").Limit(10).Find(&leads)

	var pendingInvoices int64
	Models.DB.Model(&Models.Invoice{}).Where("status IN ?", []Models.InvoiceStatus{Models.InvoicePending, Models.InvoiceOverdue}).Count(&pendingInvoices)

	c.JSON(http.StatusOK, gin.H{
		"panel":            PanelForRole(Models.RoleMaster),
		"appointments":     appointments,
		"leads":            leads,
		"pending_invoices": pendingInvoices,
	})
}

func doctorPanel(c *gin.Context) {
	// The doctor's queue: waiting appointments ordered by hour.
	var queue []Models.Appointment
	Models.DB.Where("status = ?", Models.AppointmentWaiting).Order("date, hour").Find(&queue)

	c.JSON(http.StatusOK, gin.H{
		"panel": PanelForRole(Models.RoleDoctor),
		"queue": queue,
	})
}

func staffPanel(c *gin.Context) {
	var patients []Models.Patient
	Models.DB.Order("id desc").Limit(10).Find(&patients)

	c.JSON(http.StatusOK, gin.H{
		"panel":    PanelForRole(Models.RoleFrontDesk),
		"patients": patients,
	})
}

func patientPanel(c *gin.Context, user Models.User) {
	if user.PatientID == nil {
		c.JSON(http.StatusOK, gin.H{"panel": PanelForRole(Models.RolePatient)})
		return
	}

	patient, err := Models.GetPatientByID(*user.PatientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	var invoices []Models.Invoice
	Models.DB.Where("patient_id = ?", patient.ID).Order("id desc").Find(&invoices)

	var appointments []Models.Appointment
	Models.DB.Where("patient_id = ?", patient.ID).Order("date desc").Find(&appointments)

	c.JSON(http.StatusOK, gin.H{
		"panel":        PanelForRole(Models.RolePatient),
		"patient":      patient,
		"plan_status":  Billing.PlanStatusLabel(patient, time.Now()),
		"invoices":     invoices,
		"appointments": appointments,
	})
}
