package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/seatserve/canteen-api/docs"
	v1 "github.com/seatserve/canteen-api/internal/api/handler/v1"
	"github.com/seatserve/canteen-api/internal/api/middleware"
	"github.com/seatserve/canteen-api/internal/config"
	"github.com/seatserve/canteen-api/internal/repository"
	"github.com/seatserve/canteen-api/internal/repository/dao"
	"github.com/seatserve/canteen-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	auth      *v1.AuthHandler
	user      *v1.UserHandler
	diner     *v1.DinerHandler
	dashboard *v1.DashboardHandler
	admin     *v1.AdminHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB, redisClient *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db, redisClient))

	return s
}

func (s *Server) initHandlers(db *gorm.DB, redisClient *redis.Client) handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	catalogRepo := repository.NewCatalogRepository(dao.NewCatalogDAO(db), dao.NewAssignmentDAO(db))
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db))
	sessionStore := repository.NewSeatSessionStore(redisClient)

	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	gate := service.NewManagerGate(catalogRepo)
	seatSvc := service.NewSeatService(catalogRepo, sessionStore, s.Config.Session.TTL)
	menuSvc := service.NewMenuService(catalogRepo)
	orderSvc := service.NewOrderService(orderRepo, catalogRepo, seatSvc, gate)
	dashboardSvc := service.NewDashboardService(orderRepo, catalogRepo, gate)
	adminSvc := service.NewAdminService(catalogRepo, userRepo, authSvc)

	return handlers{
		auth:      v1.NewAuthHandler(s.Config.API, authSvc),
		user:      v1.NewUserHandler(userSvc),
		diner:     v1.NewDinerHandler(s.Config.Session, seatSvc, menuSvc, orderSvc),
		dashboard: v1.NewDashboardHandler(dashboardSvc, orderSvc, userSvc),
		admin:     v1.NewAdminHandler(adminSvc, userSvc),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	diner := s.Router.Group(basePath)
	{
		diner.GET("/scan/:qrToken", h.diner.HandleScan)
		diner.GET("/canteens/:canteenID/menu", h.diner.HandleGetMenu)
		diner.GET("/session/menu", h.diner.HandleGetSessionMenu)
		diner.POST("/orders", h.diner.HandleCreateOrder)
		diner.GET("/orders/:orderID/status", h.diner.HandleGetOrderStatus)
	}

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", h.auth.HandleLogin)
	}

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	users := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		users.GET("/users/me", h.user.HandleGetMe)
	}

	dashboard := s.Router.Group(basePath+"/dashboard", authenticator.VerifyJWT())
	{
		dashboard.GET("/stats", h.dashboard.HandleGetStats)
		dashboard.GET("/orders", h.dashboard.HandleListOrders)
		dashboard.POST("/orders/:orderID/deliver", h.dashboard.HandleMarkDelivered)
		dashboard.GET("/canteens", h.dashboard.HandleGetCanteens)
	}

	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT())
	{
		admin.POST("/managers", h.admin.HandleCreateManager)
		admin.PUT("/canteens/:canteenID/manager", h.admin.HandleAssignManager)
		admin.PATCH("/qrcodes/:qrToken", h.admin.HandleSetQRCodeActive)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Canteen seat ordering API"
	docs.SwaggerInfo.Description = "Order food from a lab seat by scanning its QR code."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
