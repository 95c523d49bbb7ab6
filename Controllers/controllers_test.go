package Controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	Models.Migrate(db)
	Models.DB = db
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/", handler)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestPriceDetail(t *testing.T) {
	setupTestDB(t)
	plan := Models.Plan{Name: "Ultramed Empresarial", Tier: Models.TierCorporate, Price: decimal.NewFromInt(120)}
	require.NoError(t, Models.DB.Create(&plan).Error)
	expiry := time.Now().AddDate(0, 6, 0)
	patient := Models.Patient{
		FullName:      "Ana Souza",
		NationalID:    "11122233344",
		PlanID:        &plan.ID,
		PlanExpiresAt: &expiry,
	}
	require.NoError(t, Models.DB.Create(&patient).Error)

	recorder := postJSON(t, PriceDetail, gin.H{"patient_id": patient.ID})
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(patient.ID), body["patient_id"])
	assert.Equal(t, "ATIVO", body["plan_status_label"])
	assert.Equal(t, "35", body["discount_percentage"])
	assert.Equal(t, "11122233344", body["national_id"])
}

func TestPriceDetailPrivatePay(t *testing.T) {
	setupTestDB(t)
	patient := Models.Patient{FullName: "Pedro Costa", NationalID: "77788899900"}
	require.NoError(t, Models.DB.Create(&patient).Error)

	recorder := postJSON(t, PriceDetail, gin.H{"patient_id": patient.ID})
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "PARTICULAR", body["plan_status_label"])
	assert.Equal(t, "0", body["discount_percentage"])
}

func TestPriceDetailUnknownPatient(t *testing.T) {
	setupTestDB(t)
	recorder := postJSON(t, PriceDetail, gin.H{"patient_id": 999})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestQuotePriceEndpointIsReadOnly(t *testing.T) {
	setupTestDB(t)
	plan := Models.Plan{Name: "Ultramed Essencial", Tier: Models.TierBasic, Price: decimal.NewFromInt(90)}
	require.NoError(t, Models.DB.Create(&plan).Error)
	expiry := time.Now().AddDate(0, 6, 0)
	patient := Models.Patient{
		FullName:      "Ana Souza",
		NationalID:    "11122233344",
		PlanID:        &plan.ID,
		PlanExpiresAt: &expiry,
	}
	require.NoError(t, Models.DB.Create(&patient).Error)

	// Quoting twice returns the same price: previews never count as usage.
	for i := 0; i < 2; i++ {
		recorder := postJSON(t, QuotePrice, gin.H{"patient_id": patient.ID, "list_price": "100,00"})
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "70", body["effective_price"])
	}

	var invoiceCount int64
	require.NoError(t, Models.DB.Model(&Models.Invoice{}).Count(&invoiceCount).Error)
	assert.Zero(t, invoiceCount)
}

func TestMarkInvoicePaidEndpointDuplicate(t *testing.T) {
	setupTestDB(t)
	invoice := Models.Invoice{
		PatientName: "Visitante",
		Amount:      decimal.NewFromInt(80),
		Status:      Models.InvoicePending,
		Reference:   "front-desk-ref-1",
	}
	require.NoError(t, Models.DB.Create(&invoice).Error)

	recorder := postJSON(t, MarkInvoicePaid, gin.H{"invoice_id": invoice.ID, "payment_method": "PIX"})
	require.Equal(t, http.StatusOK, recorder.Code)

	// Re-marking with a different method must leave the settled invoice
	// untouched.
	recorder = postJSON(t, MarkInvoicePaid, gin.H{"invoice_id": invoice.ID, "payment_method": "DINHEIRO"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var reloaded Models.Invoice
	require.NoError(t, Models.DB.First(&reloaded, invoice.ID).Error)
	assert.Equal(t, Models.InvoicePaid, reloaded.Status)
	assert.Equal(t, "PIX", reloaded.PaymentMethod)
}

func TestCaptureLead(t *testing.T) {
	setupTestDB(t)

	recorder := postJSON(t, CaptureLead, gin.H{"nome": "Joana Dias", "telefone": "67999990000", "interesse": "Plano Master"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var lead Models.Lead
	require.NoError(t, Models.DB.First(&lead).Error)
	assert.Equal(t, "Joana Dias", lead.Name)
	assert.Equal(t, "67999990000", lead.Phone)
	assert.Equal(t, "Plano Master", lead.Interest)
	assert.False(t, lead.Handled)

	// Missing phone is rejected before anything is stored.
	recorder = postJSON(t, CaptureLead, gin.H{"nome": "Sem Telefone"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var count int64
	require.NoError(t, Models.DB.Model(&Models.Lead{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSearchPatients(t *testing.T) {
	setupTestDB(t)
	for _, patient := range []Models.Patient{
		{FullName: "Ana Clara Souza", NationalID: "11122233344", IsActive: true},
		{FullName: "Bruno Lima", NationalID: "22233344455", IsActive: true},
	} {
		require.NoError(t, Models.DB.Create(&patient).Error)
	}

	router := gin.New()
	router.GET("/", SearchPatients)
	req := httptest.NewRequest(http.MethodGet, "/?term=ana", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	results := body["results"].([]any)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "Ana Clara Souza", first["nome"])
	assert.Equal(t, "11122233344", first["cpf"])
}
