package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(store CounterStore, max int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/public", Limit(store, max, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestLimit_UnderCap(t *testing.T) {
	router := limitedRouter(NewMemoryStore(), 5)

	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/public", nil))
		assert.Equal(t, http.StatusOK, rr.Code, "request %d", i+1)
	}
}

func TestLimit_OverCap(t *testing.T) {
	router := limitedRouter(NewMemoryStore(), 3)

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/public", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestLimit_PerClientAddress(t *testing.T) {
	router := limitedRouter(NewMemoryStore(), 1)

	first := httptest.NewRequest(http.MethodGet, "/public", nil)
	first.RemoteAddr = "10.0.0.1:1000"
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, first)
	assert.Equal(t, http.StatusOK, rr.Code)

	blocked := httptest.NewRequest(http.MethodGet, "/public", nil)
	blocked.RemoteAddr = "10.0.0.1:1001"
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, blocked)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	other := httptest.NewRequest(http.MethodGet, "/public", nil)
	other.RemoteAddr = "10.0.0.2:1000"
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusOK, rr.Code)
}
