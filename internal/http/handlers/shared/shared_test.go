package shared

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return body
}

func TestGetCartSessionMissing(t *testing.T) {
	c, w := newTestContext()
	if _, ok := GetCartSession(c); ok {
		t.Fatalf("missing session should fail")
	}
	body := decodeBody(t, w)
	if body["status_code"] != float64(response.CodeBadRequest) {
		t.Fatalf("unexpected status code: %v", body["status_code"])
	}
}

func TestGetCartSessionPresent(t *testing.T) {
	c, w := newTestContext()
	c.Set(constants.CartSessionContextKey, "abc")
	session, ok := GetCartSession(c)
	if !ok || session != "abc" {
		t.Fatalf("unexpected session: %q %v", session, ok)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("present session should not write a response")
	}
}

func TestRespondErrorWithData(t *testing.T) {
	c, w := newTestContext()
	c.Set("request_id", "req-1")
	c.Set(constants.CartSessionContextKey, "abc")
	RespondErrorWithData(c, response.CodeBadGateway, "Erreur de paiement", gin.H{"order_id": "snaki-1"}, errors.New("relay down"))

	body := decodeBody(t, w)
	if body["status_code"] != float64(response.CodeBadGateway) || body["msg"] != "Erreur de paiement" {
		t.Fatalf("unexpected body: %+v", body)
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok || data["order_id"] != "snaki-1" {
		t.Fatalf("unexpected data: %+v", body["data"])
	}
}

func TestRespondErrorTranslatesKey(t *testing.T) {
	c, w := newTestContext()
	c.Request.Header.Set("X-Locale", "en-US")
	RespondError(c, response.CodeNotFound, "error.not_found", nil)
	body := decodeBody(t, w)
	if body["status_code"] != float64(response.CodeNotFound) || body["msg"] != "Resource not found" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestParsePagination(t *testing.T) {
	c, _ := newTestContext()
	page, size := ParsePagination(c, 50)
	if page != 1 || size != 50 {
		t.Fatalf("unexpected defaults: %d %d", page, size)
	}

	c.Request = httptest.NewRequest("GET", "/?page=3&page_size=1000", nil)
	page, size = ParsePagination(c, 50)
	if page != 3 || size != maxPageSize {
		t.Fatalf("page size should be capped: %d %d", page, size)
	}

	c.Request = httptest.NewRequest("GET", "/?page=abc&page_size=-2", nil)
	if page, size := ParsePagination(c, 0); page != 1 || size != maxPageSize {
		t.Fatalf("invalid values should fall back: %d %d", page, size)
	}
}
