package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studycircle-dev/studycircle/internal/domain"
	mw "github.com/studycircle-dev/studycircle/internal/middleware"
)

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// withUser injects the user the auth middleware would have resolved.
func withUser(req *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(req.Context(), mw.UserClaimsKey, user)
	return req.WithContext(ctx)
}

func authedRequest(t *testing.T, method, url string, body []byte, user *domain.User) *http.Request {
	t.Helper()
	return withUser(createRequest(t, method, url, body), user)
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name             string
		input            interface{}
		expected         string
		status           int
		checkContentType bool
	}{
		{
			name:             "Valid JSON",
			input:            map[string]string{"message": "hello"},
			expected:         `{"message":"hello"}`,
			status:           http.StatusOK,
			checkContentType: true,
		},
		{
			name:     "Invalid JSON (channel)", // Test for encoding errors
			input:    make(chan int),
			expected: "Internal error",
			status:   http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			writeJSON(rr, tt.input)

			assert.Equal(t, tt.status, rr.Code, "handler returned wrong status code")
			if tt.checkContentType {
				assert.Equal(t, "application/json", rr.Header().Get("Content-Type"), "handler returned wrong content type")
			}
			assert.Equal(t, tt.expected+"\n", rr.Body.String(), "handler returned unexpected body")
		})
	}
}

func TestRequireUser(t *testing.T) {
	rr := httptest.NewRecorder()
	req := createRequest(t, http.MethodGet, "/v1/notifications", nil)

	user := requireUser(rr, req)

	assert.Nil(t, user)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
