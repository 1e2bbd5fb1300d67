package rest

import (
	"context"
	"net/http"

	"cartAffinity/business/attribution"
	"cartAffinity/domain"
	"cartAffinity/pkg/logger"
	"cartAffinity/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type (
	OrderWebhookHandler struct {
		validate           *validator.Validate
		attributionService AttributionService
	}

	AttributionService interface {
		ProcessOrder(ctx context.Context, shop string, order domain.OrderCreated) attribution.Result
	}

	OrderWebhookRequest struct {
		Shop  string              `json:"shop" validate:"required"`
		Order domain.OrderCreated `json:"order" validate:"required"`
	}
)

func NewOrderWebhookHandler(attributionService AttributionService) *OrderWebhookHandler {
	return &OrderWebhookHandler{
		validate:           validator.New(),
		attributionService: attributionService,
	}
}

// HandleOrderCreated runs the attribution matcher for a delivered order.
// The platform needs a fast 200 and will retry or disable the webhook on
// repeated failure, so a processing problem never surfaces as an error
// status: ProcessOrder already degrades to {usedApp:false, revenue:0}.
func (h *OrderWebhookHandler) HandleOrderCreated(c echo.Context) error {
	metrics.OrderWebhooksTotal.Inc()

	var request OrderWebhookRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid order webhook body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if request.Shop == "" {
		request.Shop = c.Request().Header.Get("X-Shop-Domain")
	}
	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed order webhook validation", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	result := h.attributionService.ProcessOrder(c.Request().Context(), request.Shop, request.Order)

	logger.Debug("order webhook processed",
		"shop", request.Shop,
		"order_id", request.Order.OrderID,
		"used_app", result.UsedApp,
		"attributed_revenue", result.AttributedRevenue,
	)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
