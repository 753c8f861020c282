package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func validateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/validate", ValidateHandler(nil, testConfig()))
	return r
}

func TestValidateHandlerMissingHeader(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/validate",
		strings.NewReader(`{"allowedRoles":["manager"]}`))
	validateRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header")
}

func TestValidateHandlerBadRoleList(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty list", `{"allowedRoles":[]}`},
		{"unknown role", `{"allowedRoles":["superadmin"]}`},
		{"missing field", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/validate", strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer some-token")
			validateRouter().ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestValidateHandlerRejectsRefreshToken(t *testing.T) {
	pair, err := IssueTokenPair(testConfig(), testUser())
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/validate",
		strings.NewReader(`{"allowedRoles":["caisse"]}`))
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	validateRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateHandlerInvalidToken(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/validate",
		strings.NewReader(`{"allowedRoles":["caisse","manager"]}`))
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	validateRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}
