package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	ErrorWithData(c, CodeBadRequest, "Champs manquants", gin.H{"step": 1})

	if w.Code != http.StatusOK {
		t.Fatalf("errors keep http 200, got %d", w.Code)
	}
	var resp struct {
		StatusCode int                    `json:"status_code"`
		Msg        string                 `json:"msg"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.StatusCode != CodeBadRequest || resp.Msg != "Champs manquants" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Data["request_id"] != "req-1" || resp.Data["step"] != float64(1) {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 4, 11)
	if p.TotalPage != 3 || p.Total != 11 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if !p.HasMore || NewPagination(3, 4, 11).HasMore {
		t.Fatalf("has_more should be true only before the last page")
	}
	if NewPagination(1, 0, 5).TotalPage != 0 {
		t.Fatalf("zero page size should not divide")
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := WrapError(CodeInternal, "Erreur", base)
	if !errors.Is(err, base) || err.Error() != "Erreur: boom" {
		t.Fatalf("unexpected app error: %v", err)
	}
}

func TestFailAddsErrorKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Fail(c, NewAppError(CodeBadGateway, "error.payment_gateway_request_failed", "Paiement indisponible", nil), gin.H{"order_id": "snaki-1"})

	var resp struct {
		StatusCode int                    `json:"status_code"`
		Msg        string                 `json:"msg"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.StatusCode != CodeBadGateway || resp.Msg != "Paiement indisponible" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Data["error_key"] != "error.payment_gateway_request_failed" || resp.Data["retryable"] != true || resp.Data["order_id"] != "snaki-1" {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
}

func TestSuccessWithPageFlattensEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithPage(c, []int{1, 2}, NewPagination(1, 2, 5))

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp["status_code"] != float64(CodeOK) || resp["pagination"] == nil || resp["data"] == nil {
		t.Fatalf("unexpected page response: %+v", resp)
	}
}
