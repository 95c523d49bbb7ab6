package Billing

import (
	"errors"
	"time"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvoiceCancelled = errors.New("invoice is cancelled")
	ErrInvoicePaid      = errors.New("invoice is already paid")
)

// HouseholdUsedThisMonth reports whether the patient's household (head plus
// every dependent) already has at least one paid invoice or completed
// appointment inside asOf's calendar month. Existence check, not a count.
func HouseholdUsedThisMonth(db *gorm.DB, patient Models.Patient, asOf time.Time) (bool, error) {
	head, err := Models.HouseholdHead(db, patient)
	if err != nil {
		return false, err
	}
	ids, err := Models.HouseholdIDs(db, head)
	if err != nil {
		return false, err
	}

	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	var paidCount int64
	if err := db.Model(&Models.Invoice{}).
		Where("patient_id IN ?", ids).
		Where("status = ?", Models.InvoicePaid).
		Where("payment_date >= ? AND payment_date < ?", monthStart, nextMonth).
		Count(&paidCount).Error; err != nil {
		return false, err
	}
	if paidCount > 0 {
		return true, nil
	}

	var visitCount int64
	if err := db.Model(&Models.Appointment{}).
		Where("patient_id IN ?", ids).
		Where("status = ?", Models.AppointmentDone).
		Where("date >= ? AND date < ?", monthStart.Format("2006-01-02"), nextMonth.Format("2006-01-02")).
		Count(&visitCount).Error; err != nil {
		return false, err
	}
	return visitCount > 0, nil
}

// QuotePrice runs the calculator against the patient's live plan state
// without writing anything. Used by the quote endpoint and by bookings.
func QuotePrice(db *gorm.DB, patient Models.Patient, listPrice decimal.Decimal, asOf time.Time) (decimal.Decimal, error) {
	var plan Models.Plan
	if patient.PlanID != nil {
		if err := db.First(&plan, *patient.PlanID).Error; err != nil {
			return listPrice, err
		}
	}
	used, err := HouseholdUsedThisMonth(db, patient, asOf)
	if err != nil {
		return listPrice, err
	}
	return EffectivePrice(patient, plan, listPrice, asOf, used)
}

// IssueInvoice creates a new invoice row. When preDiscounted is false the
// amount first runs through the discount calculator. markPaid supports
// backdated manual reconciliation entries; even then issuance never
// touches plan expiration dates, only MarkInvoicePaid does.
func IssueInvoice(db *gorm.DB, patient Models.Patient, amount decimal.Decimal, dueDate *time.Time, method string, preDiscounted bool, markPaid bool) (Models.Invoice, error) {
	now := time.Now()

	final := amount
	if !preDiscounted {
		var err error
		final, err = QuotePrice(db, patient, amount, now)
		if err != nil {
			return Models.Invoice{}, err
		}
	}

	invoice := Models.Invoice{
		PatientID:     patient.ID,
		PatientName:   patient.FullName,
		Amount:        final,
		DueDate:       dueDate,
		Status:        Models.InvoicePending,
		PaymentMethod: method,
		Reference:     uuid.NewString(),
	}
	if markPaid {
		invoice.Status = Models.InvoicePaid
		invoice.PaymentDate = &now
	}
	if err := db.Create(&invoice).Error; err != nil {
		return Models.Invoice{}, err
	}
	return invoice, nil
}

// MarkInvoicePaid transitions an invoice to PAID and renews the whole
// household's plan coverage in the same transaction. Re-marking an
// already-paid invoice is a no-op that leaves the stored row untouched,
// method included, so duplicate gateway notifications can never
// double-extend coverage or rewrite a settled invoice. The returned bool
// reports whether the transition actually happened; callers use it to
// skip notifications on duplicates.
//
// Renewal: base = the head's current expiration when it is still in the
// future, otherwise today; everyone in the household gets base + 365 days.
// Early renewal keeps the unused remainder, late renewal carries nothing
// negative over.
func MarkInvoicePaid(db *gorm.DB, invoiceID uint, method string) (Models.Invoice, bool, error) {
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice Models.Invoice
	if err := tx.First(&invoice, invoiceID).Error; err != nil {
		tx.Rollback()
		return invoice, false, err
	}

	if invoice.Status == Models.InvoicePaid {
		tx.Rollback()
		return invoice, false, nil
	}
	if invoice.Status == Models.InvoiceCancelled {
		tx.Rollback()
		return invoice, false, ErrInvoiceCancelled
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       Models.InvoicePaid,
		"payment_date": now,
	}
	if method != "" {
		updates["payment_method"] = method
		invoice.PaymentMethod = method
	}
	if err := tx.Model(&Models.Invoice{}).Where("id = ?", invoice.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return invoice, false, err
	}
	invoice.Status = Models.InvoicePaid
	invoice.PaymentDate = &now

	// Walk-in invoices have no registry row and nothing to renew.
	if invoice.PatientID != 0 {
		var patient Models.Patient
		if err := tx.First(&patient, invoice.PatientID).Error; err != nil {
			tx.Rollback()
			return invoice, false, err
		}
		head, err := Models.HouseholdHead(tx, patient)
		if err != nil {
			tx.Rollback()
			return invoice, false, err
		}
		if head.PlanID != nil {
			today := DateOnly(now)
			base := today
			if head.PlanExpiresAt != nil && DateOnly(*head.PlanExpiresAt).After(today) {
				base = DateOnly(*head.PlanExpiresAt)
			}
			newExpiry := base.AddDate(0, 0, 365)

			// One UPDATE covers the head and every dependent, so the
			// household can never renew partially.
			if err := tx.Model(&Models.Patient{}).
				Where("id = ? OR household_head_id = ?", head.ID, head.ID).
				Update("plan_expires_at", newExpiry).Error; err != nil {
				tx.Rollback()
				return invoice, false, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return invoice, false, err
	}
	return invoice, true, nil
}

// CancelInvoice voids a PENDING or OVERDUE invoice. Paid invoices stay
// paid; there is no un-pay transition.
func CancelInvoice(db *gorm.DB, invoiceID uint) (Models.Invoice, error) {
	var invoice Models.Invoice
	if err := db.First(&invoice, invoiceID).Error; err != nil {
		return invoice, err
	}
	if invoice.Status == Models.InvoicePaid {
		return invoice, ErrInvoicePaid
	}
	if invoice.Status == Models.InvoiceCancelled {
		return invoice, nil
	}
	if err := db.Model(&Models.Invoice{}).Where("id = ?", invoice.ID).
		Update("status", Models.InvoiceCancelled).Error; err != nil {
		return invoice, err
	}
	invoice.Status = Models.InvoiceCancelled
	return invoice, nil
}
