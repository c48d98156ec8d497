package routes

import (
	"time"

	"bellezza-backend/config"
	"bellezza-backend/controllers"
	"bellezza-backend/middleware"
	"bellezza-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Response cache scopes.
const (
	scopeAppointments = "appointments"
	scopeReviews      = "reviews"
	scopeClients      = "clients"
	scopeReminders    = "reminders"
)

// Handlers bundles everything the router wires.
type Handlers struct {
	Auth         *controllers.AuthController
	Catalog      *controllers.CatalogController
	Clients      *controllers.ClientController
	Appointments *controllers.AppointmentController
	Reviews      *controllers.ReviewController
	Media        *controllers.MediaController
	Reminders    *controllers.ReminderController
	Stream       *controllers.StreamController
}

type Options struct {
	Tokens         *utils.TokenManager
	ResponseCache  *middleware.ResponseCache
	AllowedOrigins []string
	AuthRateLimit  int64
	AuthRatePeriod time.Duration
	MediaRoot      string
	Log            logrus.FieldLogger
}

func SetupRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	r.Use(config.PerformanceLogger(opts.Log))

	if opts.MediaRoot != "" {
		r.Static("/media", opts.MediaRoot)
	}

	requireAuth := utils.AuthMiddleware(opts.Tokens)
	staffOnly := utils.RequireStaff()
	rc := opts.ResponseCache

	auth := r.Group("/auth")
	{
		limited := auth.Group("", middleware.RateLimit(opts.AuthRateLimit, opts.AuthRatePeriod))
		limited.POST("/register", h.Auth.Register)
		limited.POST("/token", h.Auth.Token)

		auth.GET("/me", requireAuth, h.Auth.Me)
	}

	api := r.Group("/api")

	// Catalog reads are public; writes need a staff token.
	public := api.Group("", utils.OptionalAuth(opts.Tokens))
	staff := api.Group("", requireAuth, staffOnly)
	{
		public.GET("/categories", h.Catalog.GetCategories)
		public.GET("/categories/:id", h.Catalog.GetCategory)
		staff.POST("/categories", h.Catalog.CreateCategory)
		staff.PUT("/categories/:id", h.Catalog.UpdateCategory)
		staff.PATCH("/categories/:id", h.Catalog.UpdateCategory)
		staff.DELETE("/categories/:id", h.Catalog.DeleteCategory)
		staff.POST("/categories/:id/image", h.Media.UploadCategoryImage)

		public.GET("/services", h.Catalog.GetServices)
		public.GET("/services/:id", h.Catalog.GetService)
		public.GET("/services/:id/employees", h.Catalog.GetServiceEmployees)
		staff.POST("/services", h.Catalog.CreateService)
		staff.PUT("/services/:id", h.Catalog.UpdateService)
		staff.PATCH("/services/:id", h.Catalog.UpdateService)
		staff.DELETE("/services/:id", h.Catalog.DeleteService)

		public.GET("/employees", h.Catalog.GetEmployees)
		public.GET("/employees/:id", h.Catalog.GetEmployee)
		staff.POST("/employees", h.Catalog.CreateEmployee)
		staff.PUT("/employees/:id", h.Catalog.UpdateEmployee)
		staff.PATCH("/employees/:id", h.Catalog.UpdateEmployee)
		staff.DELETE("/employees/:id", h.Catalog.DeleteEmployee)
		staff.POST("/employees/:id/photo", h.Media.UploadEmployeePhoto)

		public.GET("/products", h.Catalog.GetProducts)
		public.GET("/products/:id", h.Catalog.GetProduct)
		staff.POST("/products", h.Catalog.CreateProduct)
		staff.PUT("/products/:id", h.Catalog.UpdateProduct)
		staff.PATCH("/products/:id", h.Catalog.UpdateProduct)
		staff.DELETE("/products/:id", h.Catalog.DeleteProduct)
	}

	// The live feed sits outside the response cache.
	staff.GET("/appointments/stream", h.Stream.Stream)

	clients := api.Group("/clients", requireAuth, rc.Handler(scopeClients, scopeAppointments, scopeReviews))
	{
		clients.GET("", h.Clients.GetClients)
		clients.GET("/me", h.Clients.GetMyClient)
		clients.GET("/:id", h.Clients.GetClient)
		clients.POST("", h.Clients.CreateClient)
		clients.PUT("/:id", h.Clients.UpdateClient)
		clients.PATCH("/:id", h.Clients.UpdateClient)
		clients.DELETE("/:id", h.Clients.DeleteClient)
	}

	appointments := api.Group("/appointments", requireAuth, rc.Handler(scopeAppointments, scopeReviews))
	{
		appointments.GET("", h.Appointments.GetAppointments)
		appointments.GET("/urgent", h.Appointments.GetUrgentAppointments)
		appointments.GET("/:id", h.Appointments.GetAppointment)
		appointments.POST("", h.Appointments.CreateAppointment)
		appointments.PUT("/:id", h.Appointments.UpdateAppointment)
		appointments.PATCH("/:id", h.Appointments.UpdateAppointment)
		appointments.DELETE("/:id", h.Appointments.DeleteAppointment)
		appointments.POST("/:id/cancel", h.Appointments.CancelAppointment)
		appointments.POST("/:id/confirm", staffOnly, h.Appointments.ConfirmAppointment)
		appointments.POST("/:id/complete", staffOnly, h.Appointments.CompleteAppointment)
	}

	reviews := api.Group("/reviews", requireAuth, rc.Handler(scopeReviews))
	{
		reviews.GET("", h.Reviews.GetReviews)
		reviews.GET("/high-rating", h.Reviews.GetHighRatedReviews)
		reviews.GET("/:id", h.Reviews.GetReview)
		reviews.POST("", h.Reviews.CreateReview)
		reviews.PUT("/:id", h.Reviews.UpdateReview)
		reviews.PATCH("/:id", h.Reviews.UpdateReview)
		reviews.DELETE("/:id", h.Reviews.DeleteReview)
	}

	reminders := api.Group("/reminders", requireAuth, staffOnly, rc.Handler(scopeReminders, scopeAppointments, scopeReviews))
	{
		reminders.GET("/logs", h.Reminders.GetReminderLogs)
		reminders.POST("/run", h.Reminders.RunReminders)
		reminders.POST("/purge", h.Reminders.PurgeAppointments)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowOriginFunc = func(string) bool { return true }
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
