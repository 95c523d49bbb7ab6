package CronJobs

import (
	"testing"
	"time"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupWorkerTest(t *testing.T) *ClinicWorkers {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	Models.Migrate(db)
	return NewClinicWorkers(db)
}

func createInvoice(t *testing.T, db *gorm.DB, status Models.InvoiceStatus, dueDate *time.Time, reference string) Models.Invoice {
	t.Helper()
	invoice := Models.Invoice{
		PatientName: "Teste",
		Amount:      decimal.NewFromInt(100),
		Status:      status,
		DueDate:     dueDate,
		Reference:   reference,
	}
	require.NoError(t, db.Create(&invoice).Error)
	return invoice
}

func TestSweepOverdueInvoices(t *testing.T) {
	workers := setupWorkerTest(t)
	pastDue := time.Now().AddDate(0, 0, -5)
	futureDue := time.Now().AddDate(0, 0, 5)

	overdue := createInvoice(t, workers.DB, Models.InvoicePending, &pastDue, "ref-overdue")
	current := createInvoice(t, workers.DB, Models.InvoicePending, &futureDue, "ref-current")
	openEnded := createInvoice(t, workers.DB, Models.InvoicePending, nil, "ref-open")
	settled := createInvoice(t, workers.DB, Models.InvoicePaid, &pastDue, "ref-settled")

	require.NoError(t, workers.SweepOverdueInvoices())

	expected := map[uint]Models.InvoiceStatus{
		overdue.ID:   Models.InvoiceOverdue,
		current.ID:   Models.InvoicePending,
		openEnded.ID: Models.InvoicePending,
		settled.ID:   Models.InvoicePaid,
	}
	for id, want := range expected {
		var invoice Models.Invoice
		require.NoError(t, workers.DB.First(&invoice, id).Error)
		assert.Equal(t, want, invoice.Status, "invoice %d", id)
	}

	// Sweeping again changes nothing further.
	require.NoError(t, workers.SweepOverdueInvoices())
	var invoice Models.Invoice
	require.NoError(t, workers.DB.First(&invoice, overdue.ID).Error)
	assert.Equal(t, Models.InvoiceOverdue, invoice.Status)
}

func TestParseDateHour(t *testing.T) {
	parsed, err := parseDateHour("2026-09-01", "14:30")
	require.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.September, parsed.Month())
	assert.Equal(t, 14, parsed.Hour())
	assert.Equal(t, 30, parsed.Minute())

	_, err = parseDateHour("01/09/2026", "14:30")
	assert.Error(t, err)
}
