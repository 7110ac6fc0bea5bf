// Package router assembles the gateway's middleware chain and route table.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/application/actions"
	"github.com/posadmin/backoffice/internal/application/schema"
	"github.com/posadmin/backoffice/internal/infrastructure/cache"
	"github.com/posadmin/backoffice/internal/infrastructure/config"
	"github.com/posadmin/backoffice/internal/infrastructure/logger"
	"github.com/posadmin/backoffice/internal/infrastructure/session"
	"github.com/posadmin/backoffice/internal/interfaces/http/handler"
	"github.com/posadmin/backoffice/internal/interfaces/http/middleware"
)

// Deps carries everything the route table needs.
type Deps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Manager    *session.Manager
	Store      cache.IdempotencyStore
	Auth       *actions.Auth
	Brands     *actions.Resource[schema.BrandPayload, actions.Brand]
	Customers  *actions.Resource[schema.CustomerPayload, actions.Customer]
	Products   *actions.Resource[schema.ProductPayload, actions.Product]
	Stocks     *actions.Stocks
	Staff      *actions.Resource[schema.StaffPayload, actions.Staff]
	Recipes    *actions.Recipes
	Invoices   *actions.Resource[schema.InvoicePayload, actions.Invoice]
	Warehouses *actions.Resource[schema.WarehousePayload, actions.Warehouse]
	Importer   *actions.Importer
	Uploader   *actions.Uploader
	Version    string
}

// New builds the gin engine with the full middleware chain and route table.
func New(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, err
		}
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
		otelgin.Middleware(cfg.App.Name),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Session(deps.Manager),
	)

	system := handler.NewSystemHandler(cfg.App.Name, deps.Version)
	engine.GET("/healthz", system.Health)

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Manager, deps.Logger)
	sessionHandler := handler.NewSessionHandler(deps.Manager)
	uploadHandler := handler.NewUploadHandler(deps.Uploader)
	bulkHandler := handler.NewBulkHandler(deps.Importer)

	api := engine.Group("/api")

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	authed := api.Group("", middleware.RequireAuth())
	dedupe := middleware.Idempotency(deps.Store, sessionTTLOrDefault(cfg), deps.Logger)

	authed.GET("/session", sessionHandler.Current)
	authed.POST("/session/business", sessionHandler.SwitchBusiness)
	authed.POST("/session/location", sessionHandler.SwitchLocation)
	authed.POST("/session/warehouse", sessionHandler.SwitchWarehouse)
	authed.GET("/session/businesses/:id/locations", authHandler.Locations)

	registerEntity(authed, "/brands", handler.NewEntityHandler[schema.BrandPayload, actions.Brand](deps.Brands), dedupe)
	registerEntity(authed, "/customers", handler.NewEntityHandler[schema.CustomerPayload, actions.Customer](deps.Customers), dedupe)
	registerEntity(authed, "/products", handler.NewEntityHandler[schema.ProductPayload, actions.Product](deps.Products), dedupe)
	registerEntity(authed, "/stocks", handler.NewEntityHandler[schema.StockPayload, actions.Stock](deps.Stocks), dedupe)
	registerEntity(authed, "/staff", handler.NewEntityHandler[schema.StaffPayload, actions.Staff](deps.Staff), dedupe)
	registerEntity(authed, "/recipes", handler.NewEntityHandler[schema.RecipePayload, actions.Recipe](deps.Recipes), dedupe)
	registerEntity(authed, "/invoices", handler.NewEntityHandler[schema.InvoicePayload, actions.Invoice](deps.Invoices), dedupe)
	registerEntity(authed, "/warehouses", handler.NewEntityHandler[schema.WarehousePayload, actions.Warehouse](deps.Warehouses), dedupe)

	authed.POST("/uploads/image", uploadHandler.Image)
	authed.POST("/imports/stocks", dedupe, bulkHandler.ImportStocks)
	authed.POST("/imports/products", dedupe, bulkHandler.ImportProducts)
	authed.GET("/imports/tasks/:id", bulkHandler.TaskStatus)

	return engine, nil
}

// registerEntity wires the five standard routes for one entity. Mutations
// go through the idempotency guard; reads do not.
func registerEntity[P any, E any](rg *gin.RouterGroup, prefix string, h *handler.EntityHandler[P, E], dedupe gin.HandlerFunc) {
	rg.POST(prefix, dedupe, h.Create)
	rg.PUT(prefix+"/:id", dedupe, h.Update)
	rg.DELETE(prefix+"/:id", dedupe, h.Delete)
	rg.GET(prefix+"/:id", h.Get)
	rg.POST(prefix+"/search", h.Search)
}

func sessionTTLOrDefault(cfg *config.Config) time.Duration {
	if cfg.Session.TTL > 0 {
		return cfg.Session.TTL
	}
	return middleware.DefaultIdempotencyTTL
}
