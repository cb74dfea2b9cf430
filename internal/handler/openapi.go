package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/deppfellow/customer-api/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API docs UI. The page loads /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	uiPath string
}

func NewOpenAPIHandler(s *server.Server, uiPath string) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		uiPath:  uiPath,
	}
}

// ServeOpenAPIUI reads the UI page on every request, uncached, so edited
// docs show up without a restart.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile(h.uiPath)

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
