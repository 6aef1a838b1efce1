// Package shopserver is a stand-in for the shop backend. It serves a fixed
// catalog and accepts orders with the same checks and response shapes as
// the real API, which makes the storefront usable offline and gives the
// api package something real to test against.
package shopserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weblarek/larek/internal/logging"
	"github.com/weblarek/larek/internal/shop"
)

// Error messages returned in the {error} body.
const (
	MsgInvalidOrder  = "Invalid order"
	MsgWrongTotal    = "Wrong order total"
	MsgNotFound      = "Product not found"
	MsgNotForSale    = "Product is not for sale"
	MsgEmptyOrder    = "Order has no items"
	MsgRouteNotFound = "Not found"
)

// orderRequest is the bound body of POST /order.
type orderRequest struct {
	Payment string           `json:"payment" binding:"required,oneof=online offline"`
	Email   string           `json:"email" binding:"required"`
	Phone   string           `json:"phone" binding:"required"`
	Address string           `json:"address" binding:"required"`
	Total   *decimal.Decimal `json:"total" binding:"required"`
	Items   []string         `json:"items" binding:"required"`
}

// Order is an accepted order.
type Order struct {
	ID      string
	Request shop.OrderRequest
	At      time.Time
}

// Server holds the catalog and the accepted orders.
type Server struct {
	products []shop.Product
	byID     map[string]shop.Product
	latency  time.Duration
	logger   *logging.Logger

	mu     sync.Mutex
	orders []Order
}

// Option configures a Server.
type Option func(*Server)

// WithLatency delays every response, to exercise loading states.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithLogger sets the request logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server for products.
func New(products []shop.Product, opts ...Option) *Server {
	s := &Server{
		products: products,
		byID:     make(map[string]shop.Product, len(products)),
		logger:   logging.NopLogger(),
	}
	for _, p := range products {
		s.byID[p.ID] = p
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Orders returns the accepted orders.
func (s *Server) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Order(nil), s.orders...)
}

// Router builds the HTTP handler.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.delay())

	r.GET("/product/", s.ListProducts)
	r.POST("/order", s.CreateOrder)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, shop.ErrorResponse{Error: MsgRouteNotFound})
	})
	return r
}

// ListProducts handles GET /product/.
func (s *Server) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, shop.ProductList{Total: len(s.products), Items: s.products})
}

// CreateOrder handles POST /order.
func (s *Server) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("order rejected", "error", err)
		c.JSON(http.StatusBadRequest, shop.ErrorResponse{Error: MsgInvalidOrder})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, shop.ErrorResponse{Error: MsgEmptyOrder})
		return
	}

	total := decimal.Zero
	for _, id := range req.Items {
		p, ok := s.byID[id]
		if !ok {
			c.JSON(http.StatusBadRequest, shop.ErrorResponse{Error: MsgNotFound})
			return
		}
		if !p.ForSale() {
			c.JSON(http.StatusBadRequest, shop.ErrorResponse{Error: MsgNotForSale})
			return
		}
		total = total.Add(p.Price.Decimal)
	}
	if !total.Equal(*req.Total) {
		c.JSON(http.StatusBadRequest, shop.ErrorResponse{Error: MsgWrongTotal})
		return
	}

	order := Order{
		ID: uuid.NewString(),
		Request: shop.OrderRequest{
			Payment: shop.ParsePayment(req.Payment),
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
			Total:   total,
			Items:   req.Items,
		},
		At: time.Now(),
	}
	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.mu.Unlock()

	s.logger.Info("order accepted", "order_id", order.ID, "items", len(req.Items), "total", total.String())
	c.JSON(http.StatusOK, shop.OrderResponse{ID: order.ID, Total: total})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start))
	}
}

func (s *Server) delay() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.latency > 0 {
			select {
			case <-time.After(s.latency):
			case <-c.Request.Context().Done():
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("stub API listening", "addr", addr, "products", len(s.products))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.logger.Info("stub API stopped")
	return nil
}

// BaseURL returns the URL clients should use for a server listening on
// addr.
func BaseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
