package Controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
)

// ExportInvoicesTable writes the invoices in a date range to an xlsx file
// for the master panel's finance report.
func ExportInvoicesTable(c *gin.Context) {
	var input struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invoices []Models.Invoice

	if input.DateFrom != "" && input.DateTo != "" {
		if err := Models.DB.Model(&Models.Invoice{}).
			Where("created_at BETWEEN ? AND ?", input.DateFrom, input.DateTo).
			Find(&invoices).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		if err := Models.DB.Model(&Models.Invoice{}).Find(&invoices).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	headers := map[string]string{
		"A1": "Issued",
		"B1": "Patient",
		"C1": "Amount",
		"D1": "Due Date",
		"E1": "Payment Method",
		"F1": "Status",
	}
	file := excelize.NewFile()
	sheet := "Invoices"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i := 0; i < len(invoices); i++ {
		appendRowInvoice(sheet, file, i, invoices)
	}
	var filename string = "./Invoices.xlsx"
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}

func appendRowInvoice(sheet string, file *excelize.File, index int, rows []Models.Invoice) (fileWriter *excelize.File) {
	rowCount := index + 2
	invoice := rows[index]

	dueDate := ""
	if invoice.DueDate != nil {
		dueDate = invoice.DueDate.Format("2006-01-02")
	}

	file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), invoice.CreatedAt.Format("2006-01-02"))
	file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), invoice.PatientName)
	file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), invoice.Amount.InexactFloat64())
	file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), dueDate)
	file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), invoice.PaymentMethod)
	file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), string(invoice.Status))
	return file
}
