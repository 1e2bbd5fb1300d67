package rest

import (
	"context"
	"net/http"

	"cartAffinity/domain"
	"cartAffinity/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type (
	TrackingHandler struct {
		validate        *validator.Validate
		trackingService TrackingService
	}

	TrackingService interface {
		RecordEvent(ctx context.Context, event domain.TrackingEvent) (domain.TrackingEvent, error)
		Counts(ctx context.Context, shop string) (map[string]int64, error)
	}

	TrackRequest struct {
		Shop      string         `json:"shop" validate:"required"`
		EventType string         `json:"event_type" validate:"required,oneof=impression ml_recommendation_served click purchase"`
		ProductID string         `json:"product_id"`
		VariantID string         `json:"variant_id"`
		SessionID string         `json:"session_id"`
		Metadata  map[string]any `json:"metadata"`
	}

	CountsQuery struct {
		Shop string `query:"shop" validate:"required"`
	}
)

func NewTrackingHandler(trackingService TrackingService) *TrackingHandler {
	return &TrackingHandler{
		validate:        validator.New(),
		trackingService: trackingService,
	}
}

func (h *TrackingHandler) Track(c echo.Context) error {
	var request TrackRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid track request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed track request validation", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	event, err := h.trackingService.RecordEvent(c.Request().Context(), domain.TrackingEvent{
		Shop:      request.Shop,
		EventType: request.EventType,
		ProductID: request.ProductID,
		VariantID: request.VariantID,
		SessionID: request.SessionID,
		Metadata:  datatypes.JSONMap(request.Metadata),
	})
	if err != nil {
		logger.Error("Failed to record tracking event", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(event))
}

func (h *TrackingHandler) Counts(c echo.Context) error {
	var q CountsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	counts, err := h.trackingService.Counts(c.Request().Context(), q.Shop)
	if err != nil {
		logger.Error("Failed to read event counters", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(counts))
}
