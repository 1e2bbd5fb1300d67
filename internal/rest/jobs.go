package rest

import (
	"context"
	"net/http"
	"time"

	"cartAffinity/business/affinity"
	"cartAffinity/pkg/logger"
	"cartAffinity/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	JobsHandler struct {
		jobService JobService
	}

	JobService interface {
		RecomputeAll(ctx context.Context) (affinity.JobSummary, error)
	}
)

func NewJobsHandler(jobService JobService) *JobsHandler {
	return &JobsHandler{jobService: jobService}
}

// RecomputeSimilarity is the cron/scheduler entry point: it rebuilds every
// shop's similarity table and returns the aggregate run summary.
func (h *JobsHandler) RecomputeSimilarity(c echo.Context) error {
	start := time.Now()

	summary, err := h.jobService.RecomputeAll(c.Request().Context())
	if err != nil {
		logger.Error("Similarity job failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.SimilarityJobDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}
