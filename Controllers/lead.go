package Controllers

import (
	"fmt"
	"net/http"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/FirebaseMessaging"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/SSE"

	"github.com/gin-gonic/gin"
)

// CaptureLead is the public endpoint behind the landing page form.
func CaptureLead(c *gin.Context) {
	var input struct {
		Name     string `json:"nome" binding:"required"`
		Phone    string `json:"telefone" binding:"required"`
		Interest string `json:"interesse"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	lead := Models.Lead{Name: input.Name, Phone: input.Phone, Interest: input.Interest}
	if err := Models.DB.Create(&lead).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})

	SSE.Broadcaster.Broadcast("refresh")
	fcms, _ := Models.GetStaffFCMs()
	if len(fcms) > 0 {
		FirebaseMessaging.SendMessage(Models.NotificationRequest{
			Tokens: fcms,
			Title:  "New Lead",
			Body:   fmt.Sprintf("%s asked about %s", lead.Name, lead.Interest),
		})
	}
}

func FetchLeads(c *gin.Context) {
	var leads []Models.Lead
	if err := Models.DB.Order("created_at desc").Find(&leads).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, leads)
}

func MarkLeadHandled(c *gin.Context) {
	var input struct {
		LeadID uint `json:"lead_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Models.DB.Model(&Models.Lead{}).Where("id = ?", input.LeadID).Update("handled", true).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked Successfully"})
}
