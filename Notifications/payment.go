package Notifications

import (
	"fmt"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/FirebaseMessaging"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/SSE"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Whatsapp"
)

// PaymentSettled fans a settled invoice out to the staff panels and to the
// patient. Both the front-desk route and the gateway webhook call this,
// and only after an actual PENDING/OVERDUE to PAID transition, so a
// duplicate settlement never notifies twice. Best effort, after the
// transaction committed.
func PaymentSettled(invoice Models.Invoice) {
	SSE.Broadcaster.Broadcast("refresh")

	fcms, _ := Models.GetStaffFCMs()
	if len(fcms) > 0 {
		FirebaseMessaging.SendMessage(Models.NotificationRequest{
			Tokens: fcms,
			Title:  "Invoice Paid",
			Body:   fmt.Sprintf("Invoice #%d (%s) was settled for %s", invoice.ID, invoice.PatientName, invoice.Amount.StringFixed(2)),
		})
	}

	if invoice.PatientID != 0 {
		patient, err := Models.GetPatientByID(invoice.PatientID)
		if err != nil || patient.Phone == "" {
			return
		}
		Whatsapp.SendMessage(patient.Phone, fmt.Sprintf("Pagamento confirmado: R$ %s. Obrigado, %s!", invoice.Amount.StringFixed(2), patient.FullName))
	}
}
