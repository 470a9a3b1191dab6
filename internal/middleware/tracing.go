package middleware

import (
	"errors"

	"github.com/homeauctiondeals/gateway/internal/errs"
	"github.com/homeauctiondeals/gateway/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// searchAttributes are the query parameters copied onto a transaction so
// slow or failing searches can be grouped by location in APM.
var searchAttributes = []string{"keyword", "city", "state", "zip"}

// TracingMiddleware owns the New Relic echo middleware. nrApp is nil when
// New Relic is disabled.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware starts a transaction per request, or passes requests
// through untouched when New Relic is disabled.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing annotates the transaction with the route, the search
// location and the gateway error code, and notices returned errors. It
// must run after NewRelicMiddleware.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("gateway.route", c.Path())
			txn.AddAttribute("gateway.environment", tm.server.Config.Primary.Env)
			txn.AddAttribute("http.real_ip", c.RealIP())
			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			query := c.QueryParams()
			for _, name := range searchAttributes {
				if v := query.Get(name); v != "" {
					txn.AddAttribute("search."+name, v)
				}
			}

			err := next(c)
			if err != nil {
				var httpErr *errs.HTTPError
				if errors.As(err, &httpErr) {
					txn.AddAttribute("gateway.error_code", httpErr.Code)
				}
				// Client mistakes are not application errors.
				if httpErr == nil || httpErr.Status >= 500 {
					txn.NoticeError(nrpkgerrors.Wrap(err))
				}
			}

			return err
		}
	}
}
