package server

import (
	"context"
	"net/http"

	"gymdesk/internal/auth"
	"gymdesk/internal/availability"
	"gymdesk/internal/billing"
	"gymdesk/internal/config"
	"gymdesk/internal/health"
	"gymdesk/internal/notify"
	"gymdesk/internal/registration"
	"gymdesk/internal/room"
	"gymdesk/internal/schedule"
	"gymdesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router  *gin.Engine
	db      *sqlx.DB
	config  *config.Config
	notify  *notify.Service
	httpSrv *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, notifyService *notify.Service, billingService billing.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	userRepo := user.NewRepository(db)
	roomRepo := room.NewRepository(db)
	scheduleRepo := schedule.NewRepository(db)
	availRepo := availability.NewRepository(db)
	regRepo := registration.NewRepository(db)
	healthRepo := health.NewRepository(db)

	userService := user.NewService(userRepo, cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
	scheduleService := schedule.NewService(scheduleRepo, roomRepo, userRepo, notifyService)
	availService := availability.NewService(availRepo)
	regService := registration.NewService(regRepo, scheduleRepo, userRepo, notifyService)

	userHandler := user.NewHandler(userService)
	roomHandler := room.NewHandler(roomRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)
	availHandler := availability.NewHandler(availService)
	regHandler := registration.NewHandler(regService)
	healthHandler := health.NewHandler(healthRepo)
	billingHandler := billing.NewHandler(billingService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.AccessTokenSecret)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/rooms", roomHandler.ListRooms)
		protected.GET("/trainers/availability", availHandler.CheckTrainer)
	}

	member := router.Group("/")
	member.Use(authMiddleware, auth.RequireRole(auth.RoleMember))
	{
		member.POST("/sessions/pt", scheduleHandler.BookPTSession)
		member.POST("/classes/:sessionID/register", regHandler.Register)
		member.GET("/my/registrations", regHandler.ListMyRegistrations)
		member.POST("/my/health", healthHandler.RecordMetric)
		member.GET("/my/health", healthHandler.ListMyMetrics)
		member.GET("/my/invoices", billingHandler.ListMyInvoices)
	}

	trainer := router.Group("/")
	trainer.Use(authMiddleware, auth.RequireRole(auth.RoleTrainer))
	{
		trainer.POST("/availability", availHandler.AddWindow)
		trainer.GET("/availability", availHandler.ListMyWindows)
		trainer.GET("/my/schedule", scheduleHandler.MySchedule)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/rooms", roomHandler.CreateRoom)
		admin.GET("/rooms", roomHandler.ListRooms)
		admin.GET("/rooms/:roomID", roomHandler.GetRoom)
		admin.POST("/trainers", userHandler.CreateTrainer)
		admin.POST("/classes", scheduleHandler.CreateClassSession)
		admin.GET("/resources/:kind/:id/sessions", scheduleHandler.ListScheduledSessions)
		admin.POST("/sessions/:kind/:sessionID/status", scheduleHandler.UpdateSessionStatus)
		admin.POST("/invoices", billingHandler.CreateInvoice)
		admin.POST("/invoices/:invoiceID/payments", billingHandler.RecordPayment)
	}

	router.GET("/health", Health(notifyService))
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		notify: notifyService,
	}
}

func (s *Server) Start(port string) error {
	s.httpSrv = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
