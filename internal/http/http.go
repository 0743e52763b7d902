package http

import (
	"github.com/gin-gonic/gin"
	"github.com/tanzid64/assets-tracker/internal/appcontext"
	"github.com/tanzid64/assets-tracker/internal/http/middleware"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware())

	service := &APIService{
		engine:  engine,
		context: ctx,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	api := h.engine.Group("/api")

	api.POST("/login/", Login(h.context))

	h.setupCompanyRoutes(api)
	h.setupEmployeeRoutes(api)
	h.setupDeviceRoutes(api)
	h.setupDeviceLogRoutes(api)
}

// Company reads and registration are open to any caller; registration is
// what provisions the owning user in the first place. Mutations require a
// token and are further checked against the loaded company.
func (h *APIService) setupCompanyRoutes(group *gin.RouterGroup) {
	companies := group.Group("/companies")

	companies.GET("/", ListCompanies(h.context))
	companies.GET("/:id/", GetCompany(h.context))
	companies.POST("/", RegisterCompany(h.context))
	companies.PUT("/:id/", middleware.JWTAuthMiddleware(), UpdateCompany(h.context))
	companies.DELETE("/:id/", middleware.JWTAuthMiddleware(), DeleteCompany(h.context))
}

func (h *APIService) setupEmployeeRoutes(group *gin.RouterGroup) {
	employees := group.Group("/employees")
	employees.Use(middleware.JWTAuthMiddleware())

	employees.GET("/", ListEmployees(h.context))
	employees.GET("/:id/", GetEmployee(h.context))
	employees.POST("/", CreateEmployee(h.context))
	employees.PUT("/:id/", UpdateEmployee(h.context))
	employees.DELETE("/:id/", DeleteEmployee(h.context))
}

func (h *APIService) setupDeviceRoutes(group *gin.RouterGroup) {
	devices := group.Group("/devices")
	devices.Use(middleware.JWTAuthMiddleware())

	devices.GET("/", ListDevices(h.context))
	devices.GET("/:id/", GetDevice(h.context))
	devices.POST("/", CreateDevice(h.context))
	devices.PUT("/:id/", UpdateDevice(h.context))
	devices.DELETE("/:id/", DeleteDevice(h.context))
}

func (h *APIService) setupDeviceLogRoutes(group *gin.RouterGroup) {
	group.GET("/device-logs/", middleware.JWTAuthMiddleware(), ListDeviceLogs(h.context))
	group.POST("/check-out/", middleware.JWTAuthMiddleware(), CheckOutDevice(h.context))
	group.PUT("/check-in/:id/", middleware.JWTAuthMiddleware(), CheckInDevice(h.context))
}
