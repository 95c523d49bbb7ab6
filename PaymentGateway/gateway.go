package PaymentGateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/shopspring/decimal"
)

// CreatePaymentLink asks the gateway for a hosted checkout page. The
// invoice's Reference travels as the external id so the webhook can find
// the invoice again.
func CreatePaymentLink(invoice Models.Invoice, payerName, payerEmail, payerPhone string) (string, error) {
	key := os.Getenv("GATEWAY_KEY")
	secret := os.Getenv("GATEWAY_SECRET")
	baseURL := os.Getenv("GATEWAY_URL")
	if baseURL == "" {
		return "", errors.New("GATEWAY_URL not configured")
	}

	payload := map[string]interface{}{
		// Gateway expects centavos.
		"amount":       invoice.Amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency":     "BRL",
		"reference_id": invoice.Reference,
		"description":  fmt.Sprintf("Fatura #%d - %s", invoice.ID, invoice.PatientName),

		"customer": map[string]interface{}{
			"name":    payerName,
			"email":   payerEmail,
			"contact": payerPhone,
		},

		"notify": map[string]bool{
			"sms":   true,
			"email": true,
		},

		"callback_method": "get",
	}

	body, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", baseURL+"/v1/payment_links", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(key, secret)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(res.Body).Decode(&result)

	if link, ok := result["short_url"].(string); ok {
		return link, nil
	}

	if errObj, ok := result["error"].(map[string]interface{}); ok {
		return "", fmt.Errorf("gateway error: %v", errObj["description"])
	}

	return "", errors.New("unknown gateway error, no short_url returned")
}
