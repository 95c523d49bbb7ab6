package PaymentGateway

import (
	"log"
	"net/http"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Billing"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Notifications"

	"github.com/gin-gonic/gin"
)

// Webhook receives payment-status callbacks keyed by the invoice
// Reference. Gateways redeliver notifications, so this must be safe to
// call any number of times: the issuer treats marking a paid invoice as a
// no-op, and we always answer 200 for known references so the gateway
// stops retrying.
func Webhook(c *gin.Context) {
	var input struct {
		Reference string `json:"reference_id" binding:"required"`
		Status    string `json:"status" binding:"required"`
		Method    string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := Models.GetInvoiceByReference(Models.DB, input.Reference)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown reference"})
		return
	}

	if input.Status != "paid" && input.Status != "approved" {
		// Declines and intermediate states change nothing on our side.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	paid, transitioned, err := Billing.MarkInvoicePaid(Models.DB, invoice.ID, input.Method)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to settle invoice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
	if transitioned {
		Notifications.PaymentSettled(paid)
	}
}
