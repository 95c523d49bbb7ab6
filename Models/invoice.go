package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "PENDING"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

type Invoice struct {
	gorm.Model
	PatientID     uint            `json:"patient_id"`
	PatientName   string          `json:"patient_name"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric"`
	DueDate       *time.Time      `json:"due_date" gorm:"default:null"`
	PaymentDate   *time.Time      `json:"payment_date" gorm:"default:null"`
	Status        InvoiceStatus   `json:"status" gorm:"default:PENDING"`
	PaymentMethod string          `json:"payment_method"`
	// Reference identifies this invoice to the payment gateway; its
	// webhook callbacks carry it back.
	Reference string `json:"reference" gorm:"uniqueIndex;size:36"`
}

func GetInvoiceByReference(db *gorm.DB, reference string) (Invoice, error) {
	var invoice Invoice
	if err := db.Where("reference = ?", reference).First(&invoice).Error; err != nil {
		return invoice, err
	}
	return invoice, nil
}
