package rest

import (
	"context"
	"net/http"

	"cartAffinity/business/affinity"
	"cartAffinity/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	AffinityHandler struct {
		validate        *validator.Validate
		affinityService AffinityService
	}

	AffinityService interface {
		Similar(ctx context.Context, shop, productID string, limit int) ([]domain.SimilarityRecord, error)
		Associations(ctx context.Context, shop, productID string) ([]affinity.AssociationCandidate, error)
	}

	SimilarQuery struct {
		Shop string `query:"shop" validate:"required"`
		N    int    `query:"n"`
	}
)

func NewAffinityHandler(affinityService AffinityService) *AffinityHandler {
	return &AffinityHandler{
		validate:        validator.New(),
		affinityService: affinityService,
	}
}

func (h *AffinityHandler) Similar(c echo.Context) error {
	productID := c.Param("productId")

	var q SimilarQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.N <= 0 {
		q.N = 10
	}

	records, err := h.affinityService.Similar(c.Request().Context(), q.Shop, productID, q.N)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(records))
}

func (h *AffinityHandler) Associations(c echo.Context) error {
	productID := c.Param("productId")

	var q SimilarQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	candidates, err := h.affinityService.Associations(c.Request().Context(), q.Shop, productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(candidates))
}
