package Routes

import (
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Controllers"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Middleware"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/PaymentGateway"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/SSE"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Whatsapp"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func ConfigRoutes(router *gin.Engine) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/login", Controllers.Login)
		public.POST("/CaptureLead", Controllers.CaptureLead)
		public.GET("/LandingSummary", Controllers.LandingSummary)
		public.POST("/payments/webhook", PaymentGateway.Webhook)
	}

	// Authorized routes
	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware())
	authorized.Use(Middleware.SetCurrentUser())
	{
		// User-related routes
		authorized.GET("/user", Controllers.CurrentUser)
		authorized.GET("/Dashboard", Controllers.Dashboard)
		authorized.POST("/SaveFcmToken", Controllers.SaveFcmToken)

		// SSE (Server-Sent Events) route
		authorized.GET("/RequestSSE", SSE.RequestSSE)

		// Patient-facing routes (own data only inside the handlers)
		authorized.POST("/FetchAppointmentsByPatientID", Controllers.FetchAppointmentsByPatientID)
		authorized.POST("/FetchPatientInvoices", Controllers.FetchPatientInvoices)
	}

	// Staff routes, any clinic role
	staff := authorized.Group("/")
	staff.Use(Middleware.RequireRole(Models.RoleMaster, Models.RoleDoctor, Models.RoleFrontDesk))
	{
		// Patient-related routes
		staff.GET("/FetchPatients", Controllers.FetchPatients)
		staff.GET("/SearchPatients", Controllers.SearchPatients)
		staff.POST("/CreatePatient", Controllers.CreatePatient)
		staff.POST("/UpdatePatient", Controllers.UpdatePatient)
		staff.POST("/PriceDetail", Controllers.PriceDetail)

		// Appointment-related routes
		staff.GET("/FetchAgenda", Controllers.FetchAgenda)
		staff.POST("/BookAppointment", Controllers.BookAppointment)
		staff.POST("/MarkAppointmentAsCompleted", Controllers.MarkAppointmentAsCompleted)
		staff.POST("/CancelAppointment", Controllers.CancelAppointment)

		// Billing-related routes
		staff.GET("/FetchInvoices", Controllers.FetchInvoices)
		staff.POST("/QuotePrice", Controllers.QuotePrice)
		staff.POST("/IssueInvoice", Controllers.IssueInvoice)
		staff.POST("/MarkInvoicePaid", Controllers.MarkInvoicePaid)
		staff.POST("/CancelInvoice", Controllers.CancelInvoice)
		staff.POST("/CreateCheckoutLink", Controllers.CreateCheckoutLink)

		// Plan listing is visible to any staff member
		staff.GET("/FetchPlans", Controllers.FetchPlans)
		staff.POST("/SellPlan", Controllers.SellPlan)

		// Lead-related routes
		staff.GET("/FetchLeads", Controllers.FetchLeads)
		staff.POST("/MarkLeadHandled", Controllers.MarkLeadHandled)

		// Record reads are open to staff, writes are gated below
		staff.POST("/FetchClinicalNotes", Controllers.FetchClinicalNotes)
		staff.POST("/FetchPrescriptions", Controllers.FetchPrescriptions)

		// WhatsApp-related routes
		staff.GET("/CheckWhatsAppLogin", Whatsapp.CheckLogin)
	}

	// Doctor routes
	doctor := authorized.Group("/")
	doctor.Use(Middleware.RequireRole(Models.RoleMaster, Models.RoleDoctor))
	{
		doctor.POST("/AddClinicalNote", Controllers.AddClinicalNote)
		doctor.POST("/AddPrescription", Controllers.AddPrescription)
	}

	// Master-only routes
	master := authorized.Group("/")
	master.Use(Middleware.RequireRole(Models.RoleMaster))
	{
		master.POST("/register", Controllers.Register)
		master.POST("/FreezeUser", Controllers.FreezeUser)
		master.POST("/AddPlan", Controllers.AddPlan)
		master.POST("/EditPlan", Controllers.EditPlan)
		master.POST("/DeletePlan", Controllers.DeletePlan)
		master.GET("/PlanRevenue", Controllers.PlanRevenue)
		master.POST("/DeactivatePatient", Controllers.DeactivatePatient)
		master.POST("/ExportInvoicesTable", Controllers.ExportInvoicesTable)
	}

	// Static file serving
	router.Static("/Web", "./Static")
}
