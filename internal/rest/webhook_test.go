package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cartAffinity/business/attribution"
	"cartAffinity/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttributionService struct {
	result   attribution.Result
	shop     string
	orderIDs []string
}

func (s *stubAttributionService) ProcessOrder(_ context.Context, shop string, order domain.OrderCreated) attribution.Result {
	s.shop = shop
	s.orderIDs = append(s.orderIDs, order.OrderID)
	return s.result
}

func postOrderWebhook(handler *OrderWebhookHandler, body string, headers map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.HandleOrderCreated(c)
	return rec
}

func TestHandleOrderCreated_ReturnsResult(t *testing.T) {
	svc := &stubAttributionService{result: attribution.Result{UsedApp: true, AttributedRevenue: 25}}
	handler := NewOrderWebhookHandler(svc)

	body := `{"shop":"s1.example.com","order":{"order_id":"O100","total_price":75,"line_items":[]}}`
	rec := postOrderWebhook(handler, body, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"attributedRevenue":25`)
	assert.Contains(t, rec.Body.String(), `"usedApp":true`)
	assert.Equal(t, "s1.example.com", svc.shop)
	assert.Equal(t, []string{"O100"}, svc.orderIDs)
}

func TestHandleOrderCreated_ShopFallsBackToHeader(t *testing.T) {
	svc := &stubAttributionService{}
	handler := NewOrderWebhookHandler(svc)

	body := `{"order":{"order_id":"O100"}}`
	rec := postOrderWebhook(handler, body, map[string]string{"X-Shop-Domain": "s9.example.com"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s9.example.com", svc.shop)
}

func TestHandleOrderCreated_MissingShopIsRejected(t *testing.T) {
	svc := &stubAttributionService{}
	handler := NewOrderWebhookHandler(svc)

	rec := postOrderWebhook(handler, `{"order":{"order_id":"O100"}}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.orderIDs, "the matcher must not run for an invalid webhook")
}

func TestHandleOrderCreated_MalformedBodyIsRejected(t *testing.T) {
	svc := &stubAttributionService{}
	handler := NewOrderWebhookHandler(svc)

	rec := postOrderWebhook(handler, `{not json`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.orderIDs)
}

func TestHandleOrderCreated_ProcessingFailureStillAnswers200(t *testing.T) {
	// ProcessOrder degrades internally; the webhook must never bubble a 5xx
	// or the platform will disable the subscription
	svc := &stubAttributionService{result: attribution.Result{}}
	handler := NewOrderWebhookHandler(svc)

	body := `{"shop":"s1.example.com","order":{"order_id":"O100"}}`
	rec := postOrderWebhook(handler, body, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"usedApp":false`)
}
