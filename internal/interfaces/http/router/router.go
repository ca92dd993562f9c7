package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sppg/backend/internal/infrastructure/auth"
	"github.com/sppg/backend/internal/infrastructure/logger"
	"github.com/sppg/backend/internal/interfaces/http/handler"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// Dependencies carries everything the router needs to assemble the API
type Dependencies struct {
	Logger           *zap.Logger
	JWTService       *auth.JWTService
	TokenBlacklist   middleware.TokenBlacklist
	CORSAllowOrigins []string
	TrustedProxies   []string

	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	Inventory   *handler.InventoryHandler
	Procurement *handler.ProcurementHandler
	Plan        *handler.PlanHandler
	Production  *handler.ProductionHandler
	Supplier    *handler.SupplierHandler
	Department  *handler.DepartmentHandler
	Employee    *handler.EmployeeHandler
	User        *handler.UserHandler
	Report      *handler.ReportHandler
}

// New assembles the gin engine. Login, refresh and health sit on the public
// group; everything else goes through JWT auth plus per-route permissions.
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	if len(deps.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(deps.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		middleware.CORS(deps.CORSAllowOrigins),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
	)

	public := engine.Group("/api/v1")
	protected := engine.Group("/api/v1")
	protected.Use(middleware.JWTAuth(deps.JWTService, deps.TokenBlacklist, deps.Logger))

	deps.System.RegisterRoutes(public)
	deps.Auth.RegisterRoutes(public, protected)
	deps.Inventory.RegisterRoutes(protected)
	deps.Procurement.RegisterRoutes(protected)
	deps.Plan.RegisterRoutes(protected)
	deps.Production.RegisterRoutes(protected)
	deps.Supplier.RegisterRoutes(protected)
	deps.Department.RegisterRoutes(protected)
	deps.Employee.RegisterRoutes(protected)
	deps.User.RegisterRoutes(protected)
	deps.Report.RegisterRoutes(protected)

	return engine
}
