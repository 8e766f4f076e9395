package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderdesk/internal/domain"
	custrepo "orderdesk/internal/repository/customer"
	orderrepo "orderdesk/internal/repository/order"
	custsvc "orderdesk/internal/service/customer"
	ordersvc "orderdesk/internal/service/order"
)

// OrderService is the order surface the handlers need.
type OrderService interface {
	List(ctx context.Context, filter orderrepo.ListFilter) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	Update(ctx context.Context, id string, in ordersvc.UpdateInput) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// CustomerService is the customer surface the handlers need.
type CustomerService interface {
	List(ctx context.Context, filter custrepo.ListFilter) ([]domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, in custsvc.CreateInput) (*domain.Customer, error)
	Update(ctx context.Context, id string, in custsvc.UpdateInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

// ReportService produces the monthly summary.
type ReportService interface {
	Summarize(ctx context.Context, year, month int) (*domain.MonthlySummary, error)
}

// Deps carries the services the router exposes.
type Deps struct {
	OrderSvc    OrderService
	CustomerSvc CustomerService
	ReportSvc   ReportService
}

// buildRouter wires routes for the API. CORS is wide open, matching the
// deployment this replaces.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.GET("/orders", listOrdersHandler(deps.OrderSvc))
		api.POST("/orders", createOrderHandler(deps.OrderSvc))
		api.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
		api.PUT("/orders/:id", updateOrderHandler(deps.OrderSvc))
		api.DELETE("/orders/:id", deleteOrderHandler(deps.OrderSvc))

		api.GET("/customers", listCustomersHandler(deps.CustomerSvc))
		api.POST("/customers", createCustomerHandler(deps.CustomerSvc))
		api.GET("/customers/:id", getCustomerHandler(deps.CustomerSvc))
		api.PUT("/customers/:id", updateCustomerHandler(deps.CustomerSvc))
		api.DELETE("/customers/:id", deleteCustomerHandler(deps.CustomerSvc))

		api.GET("/reports/monthly-summary", monthlySummaryHandler(deps.ReportSvc))
	}

	return router
}

// writeError maps the error taxonomy to HTTP statuses: invalid input
// 400, missing entity 404, store fault 503, anything else 500.
func writeError(c *gin.Context, err error) {
	var ve domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
