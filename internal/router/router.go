// Package router builds the echo router: global middleware, the error
// handler and every route.
package router

import (
	"net/http"

	"github.com/homeauctiondeals/gateway/internal/handler"
	"github.com/homeauctiondeals/gateway/internal/middleware"
	"github.com/homeauctiondeals/gateway/internal/model"
	"github.com/homeauctiondeals/gateway/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires middleware in request order: CORS and secure headers,
// request id, New Relic transaction, request logger context, access log,
// panic recovery.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	// Trust X-Forwarded-For only from private ranges (the load balancer).
	router.IPExtractor = echo.ExtractIPFromXFFHeader()

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerSearchRoutes(router, h)
	registerEnquiryRoutes(router, h, middlewares, s.Config.RateLimit.EnquiryPerMinute)

	return router
}

func registerSearchRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/dropdown-search", handler.Handle(
		h.Location.Handler,
		h.Location.DropdownSearch,
		http.StatusOK,
		func() *model.DropdownSearchRequest { return &model.DropdownSearchRequest{} },
	))

	r.GET("/property-search", handler.Handle(
		h.Property.Handler,
		h.Property.PropertySearch,
		http.StatusOK,
		func() *model.PropertySearchRequest { return &model.PropertySearchRequest{} },
	))
}

func registerEnquiryRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares, perMinute int) {
	r.POST("/enquiry", handler.Handle(
		h.Enquiry.Handler,
		h.Enquiry.SubmitEnquiry,
		http.StatusOK,
		func() *model.EnquiryRequest { return &model.EnquiryRequest{} },
	), m.RateLimit.Limit("enquiry", perMinute))
}
