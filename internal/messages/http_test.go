package messages

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carrylink/carrylink-backend/internal/auth"
)

type staticResolver struct {
	identity *auth.Identity
}

func (s staticResolver) Resolve(*http.Request) (*auth.Identity, error) {
	return s.identity, nil
}

// messageRouter wires the handlers behind a fixed identity. The repo has no
// pool; requests use a non-uuid id so the thread lookup fails fast with
// ErrRequestNotFound before any query runs, which lets these tests separate
// the validation outcome (400) from "got past validation" (404).
func messageRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := auth.Chain{staticResolver{&auth.Identity{ID: "u1", Email: "u1@example.com", Name: "U1"}}}
	rg := r.Group("/requests")
	rg.Use(auth.RequireUser(chain))
	Register(rg, NewRepo(nil))
	return r
}

func postMessage(router *gin.Engine, content string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"content": content})
	req := httptest.NewRequest(http.MethodPost, "/requests/not-a-uuid/messages", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateMessage_ContentBounds(t *testing.T) {
	router := messageRouter()

	cases := []struct {
		name     string
		content  string
		wantCode int
	}{
		{"empty", "", http.StatusBadRequest},
		{"single char", "x", http.StatusNotFound},
		{"at cap", strings.Repeat("a", 1000), http.StatusNotFound},
		{"over cap", strings.Repeat("a", 1001), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postMessage(router, tc.content)
			assert.Equal(t, tc.wantCode, rr.Code)
		})
	}
}

func TestCreateMessage_ContentBoundsInCharacters(t *testing.T) {
	router := messageRouter()

	// 600 CJK characters is 1800 bytes but well under the 1000-character
	// cap, so it must clear validation.
	long := strings.Repeat("界", 600)
	require.Greater(t, len(long), 1000)
	rr := postMessage(router, long)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// 1000 multibyte characters sits exactly at the cap.
	rr = postMessage(router, strings.Repeat("界", 1000))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// 1001 characters is over, whatever the byte count.
	rr = postMessage(router, strings.Repeat("界", 1001))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
