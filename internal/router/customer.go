package router

import (
	"net/http"

	"github.com/deppfellow/customer-api/internal/handler"
	"github.com/deppfellow/customer-api/internal/model"
	"github.com/labstack/echo/v4"
)

func registerCustomerRoutes(r *echo.Echo, h *handler.Handlers) {
	ch := h.Customer

	r.GET("/", handler.Handle(ch.Handler, ch.Index, http.StatusOK, &model.EmptyRequest{}))

	customers := r.Group("/customers")
	customers.POST("", handler.Handle(ch.Handler, ch.CreateCustomer, http.StatusOK, &model.CustomerRequest{}))
	customers.GET("", handler.Handle(ch.Handler, ch.GetCustomer, http.StatusOK, &model.CustomerIDQuery{}))
	customers.PUT("", handler.Handle(ch.Handler, ch.UpdateCustomer, http.StatusOK, &model.CustomerRequest{}))
	customers.DELETE("", handler.Handle(ch.Handler, ch.DeleteCustomer, http.StatusOK, &model.CustomerIDQuery{}))

	r.GET("/allcustomers", handler.Handle(ch.Handler, ch.ListCustomers, http.StatusOK, &model.EmptyRequest{}))

	r.GET("/fetchtest", handler.Handle(ch.Handler, ch.FetchTest, http.StatusOK, &model.EmptyRequest{}))
}
