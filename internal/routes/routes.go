package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/cache"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/config"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/handlers"
	infraRepo "github.com/ConectaSaudeBR/rede-scheduler/internal/infra/repository"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/middleware"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/notification"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/payments"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/storage"
	ucBilling "github.com/ConectaSaudeBR/rede-scheduler/internal/usecase/billing"
	ucSchedule "github.com/ConectaSaudeBR/rede-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	billingRepo := infraRepo.NewBillingGormRepository(db)

	calendarCache := cache.New(cfg)
	uploader := storage.NewUploader(cfg)

	notifyLogger := notification.New(db)
	dispatcher := notification.NewDispatcher(notifyLogger)

	var linkGen payments.LinkGenerator
	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Printf("mercadopago disabled: %v", err)
		} else {
			linkGen = mp
		}
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	slotsUC := ucSchedule.NewGetAvailableSlots(scheduleRepo, cfg)
	calendarUC := ucSchedule.NewGetAvailabilityCalendar(scheduleRepo, calendarCache, cfg)

	evaluateRuleUC := ucBilling.NewEvaluateRule(billingRepo, dispatcher, linkGen, cfg)
	scanPendingUC := ucBilling.NewScanPending(billingRepo, dispatcher)
	evaluateAllUC := ucBilling.NewEvaluateAll(billingRepo, evaluateRuleUC, scanPendingUC)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	providerHandler := handlers.NewProviderHandler(db, uploader)

	procedureHandler := handlers.NewProcedureHandler(db)
	patientHandler := handlers.NewPatientHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(scheduleRepo, scheduleRepo)
	availabilityHandler := handlers.NewAvailabilityHandler(db, scheduleRepo, slotsUC, calendarUC)
	appointmentHandler := handlers.NewAppointmentHandler(db, appointmentRepo, scheduleRepo)

	billingHandler := handlers.NewBillingHandler(db, evaluateAllUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/slots", availabilityHandler.PublicSlots)
			publicAPI.GET("/:slug/calendar", availabilityHandler.PublicCalendar)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/provider", providerHandler.GetMe)
			secured.PATCH("/me/provider", providerHandler.UpdateMe)
			secured.POST("/me/provider/avatar", providerHandler.UploadAvatar)
			secured.POST("/me/provider/documents", providerHandler.UploadDocument)
			secured.GET("/me/provider/documents", providerHandler.ListDocuments)

			secured.GET("/me/patients", patientHandler.List)

			secured.GET("/me/procedures", procedureHandler.List)
			secured.POST("/me/procedures", procedureHandler.Create)
			secured.PATCH("/me/procedures/:id", procedureHandler.Update)

			// ------------------------------
			// AGENDA
			// ------------------------------
			secured.GET("/me/schedule", scheduleHandler.GetTemplates)
			secured.PUT("/me/schedule", scheduleHandler.UpdateTemplates)
			secured.POST("/me/schedule/exceptions", scheduleHandler.CreateException)
			secured.DELETE("/me/schedule/exceptions/:id", scheduleHandler.DeleteException)

			secured.GET("/me/availability/slots", availabilityHandler.Slots)
			secured.GET("/me/availability/calendar", availabilityHandler.Calendar)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// FATURAMENTO
			// ------------------------------
			secured.GET("/billing/health-plans", billingHandler.ListHealthPlans)
			secured.POST("/billing/health-plans", billingHandler.CreateHealthPlan)
			secured.GET("/billing/rules", billingHandler.ListRules)
			secured.POST("/billing/rules", billingHandler.CreateRule)
			secured.GET("/billing/batches", billingHandler.ListBatches)
			secured.POST("/billing/run", billingHandler.Run)
		}
	}
}
