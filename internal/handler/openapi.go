package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/homeauctiondeals/gateway/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIUIPath is the docs page, read from the working directory.
const OpenAPIUIPath = "static/openapi.html"

// OpenAPIHandler serves the API docs UI. The page loads static/openapi.json.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the docs page uncached so edits show up at once.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	page, err := os.ReadFile(OpenAPIUIPath)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	return c.HTMLBlob(http.StatusOK, page)
}
