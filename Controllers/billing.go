package Controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Billing"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Notifications"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/PaymentGateway"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Whatsapp"

	"github.com/gin-gonic/gin"
)

func FetchInvoices(c *gin.Context) {
	status := c.Query("status")
	query := Models.DB.Order("id desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var invoices []Models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func FetchPatientInvoices(c *gin.Context) {
	var input struct {
		PatientID uint `json:"patient_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var invoices []Models.Invoice
	if err := Models.DB.Where("patient_id = ?", input.PatientID).Order("id desc").Find(&invoices).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// QuotePrice previews the effective price for a patient without creating
// anything. Calling it repeatedly must not change any stored state.
func QuotePrice(c *gin.Context) {
	var input struct {
		PatientID uint   `json:"patient_id"`
		ListPrice string `json:"list_price" binding:"required"`
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

	patient, err := Models.GetPatientByID(input.PatientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	final, err := Billing.QuotePrice(Models.DB, patient, listPrice, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list_price": listPrice, "effective_price": final})
}

// IssueInvoice creates an invoice from the front desk. PreDiscounted skips
// the calculator for amounts that were already negotiated; MarkPaid
// supports backdated reconciliation entries.
func IssueInvoice(c *gin.Context) {
	var input struct {
		PatientID     uint   `json:"patient_id"`
		Amount        string `json:"amount" binding:"required"`
		DueDate       string `json:"due_date"`
		PaymentMethod string `json:"payment_method"`
		PreDiscounted bool   `json:"pre_discounted"`
		MarkPaid      bool   `json:"mark_paid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := Billing.ParsePrice(input.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := Models.GetPatientByID(input.PatientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	var dueDate *time.Time
	if input.DueDate != "" {
		due, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
			return
		}
		dueDate = &due
	}

	invoice, err := Billing.IssueInvoice(Models.DB, patient, amount, dueDate, input.PaymentMethod, input.PreDiscounted, input.MarkPaid)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice Issued Successfully", "invoice": invoice})
}

// MarkInvoicePaid is the front-desk manual settlement route. The renewal
// propagation, idempotence guard and method recording live in the Billing
// issuer; a duplicate call changes nothing and notifies no one.
func MarkInvoicePaid(c *gin.Context) {
	var input struct {
		InvoiceID     uint   `json:"invoice_id"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, transitioned, err := Billing.MarkInvoicePaid(Models.DB, input.InvoiceID, input.PaymentMethod)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked Successfully", "invoice": invoice})

	if transitioned {
		Notifications.PaymentSettled(invoice)
	}
}

func CancelInvoice(c *gin.Context) {
	var input struct {
		InvoiceID uint `json:"invoice_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	invoice, err := Billing.CancelInvoice(Models.DB, input.InvoiceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cancelled Successfully", "invoice": invoice})
}

// CreateCheckoutLink generates a hosted payment link for a pending
// invoice and sends it to the patient over WhatsApp when possible.
func CreateCheckoutLink(c *gin.Context) {
	var input struct {
		InvoiceID uint `json:"invoice_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invoice Models.Invoice
	if err := Models.DB.First(&invoice, input.InvoiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	if invoice.Status == Models.InvoicePaid || invoice.Status == Models.InvoiceCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice is not payable"})
		return
	}

	var name, email, phone string
	if invoice.PatientID != 0 {
		if patient, err := Models.GetPatientByID(invoice.PatientID); err == nil {
			name, email, phone = patient.FullName, patient.Email, patient.Phone
		}
	}

	link, err := PaymentGateway.CreatePaymentLink(invoice, name, email, phone)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment link"})
		return
	}

	if phone != "" {
		Whatsapp.SendMessage(phone, fmt.Sprintf("Link para pagamento da sua fatura (R$ %s): %s", invoice.Amount.StringFixed(2), link))
	}

	c.JSON(http.StatusOK, gin.H{"payment_link": link})
}

