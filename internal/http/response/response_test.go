package response

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPagination(t *testing.T) {
	if p := NewPagination(1, 20, 41); p.TotalPage != 3 {
		t.Fatalf("want 3 pages, got %d", p.TotalPage)
	}
	if p := NewPagination(1, 20, 0); p.TotalPage != 0 {
		t.Fatalf("empty result must have 0 pages, got %d", p.TotalPage)
	}
	if p := NewPagination(1, 0, 10); p.TotalPage != 0 {
		t.Fatalf("zero page size must not divide, got %d", p.TotalPage)
	}
}

func TestTooManyRequestsSetsRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/checkout", nil)

	TooManyRequests(c, "slow down", 42)
	if w.Code != 200 {
		t.Fatalf("envelope must use http 200, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "42" {
		t.Fatalf("want Retry-After 42, got %q", got)
	}
	if !strings.Contains(w.Body.String(), `"status_code":429`) || !strings.Contains(w.Body.String(), `"retry_after":42`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
