package public

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

func checkoutErrorBody(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/checkout", nil)

	respondCheckoutError(c, err)

	var body struct {
		StatusCode int                    `json:"status_code"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return body.StatusCode, body.Data
}

func TestCheckoutErrorMissingCartIsNotFound(t *testing.T) {
	code, _ := checkoutErrorBody(t, service.ErrCartNotFound)
	if code != response.CodeNotFound {
		t.Fatalf("status_code want %d got %d", response.CodeNotFound, code)
	}
}

func TestCheckoutErrorInsufficientStockCarriesShortfall(t *testing.T) {
	code, data := checkoutErrorBody(t, &service.InsufficientStockError{
		VariantID: 12,
		SKU:       "ASR-6-WG",
		Requested: 3,
		Available: 1,
	})
	if code != response.CodeBadRequest {
		t.Fatalf("status_code want %d got %d", response.CodeBadRequest, code)
	}
	if data["requested"] != float64(3) || data["available"] != float64(1) {
		t.Fatalf("shortfall payload missing, got %v", data)
	}
	if data["sku"] != "ASR-6-WG" {
		t.Fatalf("sku want ASR-6-WG got %v", data["sku"])
	}
}

func TestCheckoutErrorUnknownFallsBackToInternal(t *testing.T) {
	code, _ := checkoutErrorBody(t, errors.New("connection reset"))
	if code != response.CodeInternal {
		t.Fatalf("status_code want %d got %d", response.CodeInternal, code)
	}
}
