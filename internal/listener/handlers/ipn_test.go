package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubListener struct {
	verdict bool
	raw     []byte
	calls   int
}

func (s *stubListener) HandleMessage(_ context.Context, raw []byte) bool {
	s.calls++
	s.raw = raw
	return s.verdict
}

func serve(h *IPNHandler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/ipn", h.Notify)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ipn", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	engine.ServeHTTP(w, req)
	return w
}

func TestIPNHandler_Notify(t *testing.T) {
	testCases := []struct {
		name           string
		verdict        bool
		expectedStatus int
	}{
		{name: "verified", verdict: true, expectedStatus: http.StatusOK},
		{name: "rejected", verdict: false, expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubListener{verdict: tc.verdict}
			body := "txn_type=web_accept&mc_gross=19.95&custom=a%3Db"

			w := serve(NewIPNHandler(stub), body)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, body, string(stub.raw), "raw body must reach the engine untouched")
		})
	}
}

func TestIPNHandler_BodyTooLarge(t *testing.T) {
	stub := &stubListener{verdict: true}

	w := serve(NewIPNHandler(stub), strings.Repeat("a", MaxBodyBytes+1))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Zero(t, stub.calls)
}
