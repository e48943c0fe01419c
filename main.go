package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"crm-backend/internal/activity"
	"crm-backend/internal/alerts"
	"crm-backend/internal/config"
	"crm-backend/internal/database"
	"crm-backend/internal/handlers"
	"crm-backend/internal/mailer"
	"crm-backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOwnerIndexes(db); err != nil {
		log.Printf("owner index warning: %v", err)
	}
	if err := database.EnsureAlertIndexes(db); err != nil {
		log.Printf("alert index warning: %v", err)
	}
	if err := database.EnsureActivityLogIndexes(db); err != nil {
		log.Printf("activity log index warning: %v", err)
	}

	recorder := activity.NewRecorder(db)
	mail := mailer.New(config.AppEnv.MailgunDomain, config.AppEnv.MailgunAPIKey, config.AppEnv.AlertSender)
	notifier := alerts.NewNotifier(db, mail)
	resolveRole := middleware.NewRoleResolver(db)

	handlers.ConfigureCookies(config.AppEnv.Production)

	secret := config.AppEnv.JWTSecret
	ttl := config.AppEnv.SessionTTL

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppEnv.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Hello World!")
	})
	r.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))

	// Session lifecycle. Sign-in happens against the external identity
	// provider; /jwt only mints the cookie for a proven email.
	r.POST("/jwt", handlers.IssueSession(secret, ttl, recorder))
	r.POST("/auth/login", handlers.Login(db, secret, ttl, recorder))
	r.POST("/logout", handlers.Logout(secret, recorder))

	// Public surface: registration, role probes, reviews.
	r.POST("/users", handlers.CreateUser(db))
	r.GET("/users/admin/:email", handlers.CheckAdmin(db))
	r.GET("/users/employee/:email", handlers.CheckExecutive(db))
	r.POST("/api/reviews", handlers.CreateReview(db))
	r.GET("/api/review", handlers.GetReviews(db))

	auth := r.Group("/")
	auth.Use(middleware.SessionAuth(secret))
	{
		adminOnly := middleware.AdminOnly(resolveRole)
		executiveOnly := middleware.ExecutiveOnly(resolveRole)

		// Admin: user management and dashboard counters.
		auth.GET("/users", adminOnly, handlers.GetUsers(db))
		auth.GET("/userCount", adminOnly, handlers.GetUsers(db))
		auth.GET("/adminCount", adminOnly, handlers.GetAdminCount(db))
		auth.GET("/employeeCount", adminOnly, handlers.GetEmployeeCount(db))
		auth.PATCH("/api/users/:id", adminOnly, handlers.ChangeUserRole(db, recorder))

		// Leads.
		auth.POST("/api/leads", executiveOnly, handlers.CreateLead(db, recorder, notifier))
		auth.PATCH("/api/leads/:id", handlers.UpdateLead(db, recorder, notifier))
		auth.DELETE("/api/leads/:id", adminOnly, handlers.DeleteLead(db, recorder))
		auth.GET("/myleads/:email", executiveOnly, handlers.GetMyLeads(db))
		auth.GET("/manageLead", adminOnly, handlers.GetAllLeads(db))

		// Follow-ups.
		auth.POST("/api/followups", executiveOnly, handlers.CreateFollowUp(db, recorder, notifier))
		auth.PATCH("/api/followups/:id", handlers.UpdateFollowUp(db, recorder, notifier))
		auth.DELETE("/api/followups/:id", adminOnly, handlers.DeleteFollowUp(db, recorder))
		auth.GET("/myfollowUp/:email", executiveOnly, handlers.GetMyFollowUps(db))
		auth.GET("/manageFollowup", adminOnly, handlers.GetAllFollowUps(db))

		// Tickets.
		auth.POST("/api/tickets", executiveOnly, handlers.CreateTicket(db, recorder))
		auth.PATCH("/api/tickets/:id", adminOnly, handlers.UpdateTicketStatus(db, recorder, notifier))
		auth.PATCH("/api/tickets/:id/response", adminOnly, handlers.AddTicketResponse(db, recorder))
		auth.DELETE("/api/tickets/:id", adminOnly, handlers.DeleteTicket(db, recorder))
		auth.GET("/alltickets", adminOnly, handlers.GetAllTickets(db))
		auth.GET("/myaddedticket/:email", executiveOnly, handlers.GetMyTickets(db))

		// Audit log and alert feed.
		auth.GET("/admin/activity-logs", adminOnly, handlers.GetActivityLogs(recorder))
		auth.GET("/api/alerts/:email", handlers.GetUnreadAlerts(notifier))
		auth.PATCH("/api/alerts/mark-read/:id", handlers.MarkAlertRead(notifier))

		// Admin analytics.
		auth.GET("/performance/leads-by-executive", adminOnly, handlers.GetLeadsByExecutive(db))
		auth.GET("/performance/followups-completed", adminOnly, handlers.GetFollowUpsCompleted(db))
		auth.GET("/performance/closure-rates", adminOnly, handlers.GetClosureRates(db))
		auth.GET("/performance/lead-conversion-trends", adminOnly, handlers.GetLeadConversionTrends(db))

		// Legacy task board.
		auth.POST("/api/tasks", handlers.CreateTask(db))
		auth.GET("/api/tasks", handlers.GetTasks(db))
		auth.GET("/mytask/:email", handlers.GetMyTasks(db))
		auth.GET("/specificTask/:id", handlers.GetTask(db))
		auth.PUT("/api/tasks/:id", handlers.ReplaceTask(db))
		auth.PATCH("/api/tasks/:id", handlers.UpdateTaskStatus(db))
		auth.DELETE("/api/tasks/:id", handlers.DeleteTask(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
