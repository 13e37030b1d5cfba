package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/peershare/service-sharing/internal/application"
)

func newBookingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewBookingHandler(&application.BookingService{})
	h.RegisterRoutes(&router.RouterGroup)
	return router
}

func doRequest(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBookingRoutes_RequireSharerHeader(t *testing.T) {
	router := newBookingRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/bookings"},
		{http.MethodPatch, "/bookings/1?approved=true"},
		{http.MethodGet, "/bookings/1"},
		{http.MethodGet, "/bookings"},
		{http.MethodGet, "/bookings/owner"},
	}
	for _, p := range paths {
		w := doRequest(router, p.method, p.path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s %s without header", p.method, p.path)
	}
}

func TestBookingRoutes_RejectMalformedSharerHeader(t *testing.T) {
	router := newBookingRouter()

	for _, bad := range []string{"abc", "-1", "0", "1.5"} {
		w := doRequest(router, http.MethodGet, "/bookings/1", map[string]string{"X-Sharer-User-Id": bad})
		assert.Equal(t, http.StatusBadRequest, w.Code, "header %q", bad)
	}
}

func TestListBookings_UnknownState(t *testing.T) {
	router := newBookingRouter()

	w := doRequest(router, http.MethodGet, "/bookings?state=delivered",
		map[string]string{"X-Sharer-User-Id": "1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown state: DELIVERED")
}

func TestDecideBooking_BadInput(t *testing.T) {
	router := newBookingRouter()
	headers := map[string]string{"X-Sharer-User-Id": "1"}

	t.Run("missing approved parameter", func(t *testing.T) {
		w := doRequest(router, http.MethodPatch, "/bookings/1", headers)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-boolean approved parameter", func(t *testing.T) {
		w := doRequest(router, http.MethodPatch, "/bookings/1?approved=maybe", headers)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric booking id", func(t *testing.T) {
		w := doRequest(router, http.MethodPatch, "/bookings/abc?approved=true", headers)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 0, 10},
		{"from=0&size=10", 0, 10},
		{"from=10&size=10", 1, 10},
		{"from=15&size=10", 1, 10},
		{"from=7&size=3", 2, 3},
		{"from=-5&size=10", 0, 10},
		{"from=0&size=0", 0, 10},
		{"from=0&size=100", 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/bookings?"+tt.query, nil)

			page, size := parsePagination(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}
