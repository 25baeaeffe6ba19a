package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"finmirror/internal/shared/auth"
)

func TestAuth(t *testing.T) {
	jwt := auth.NewJWT("test-secret")
	validToken, _ := jwt.Generate(1, "test@example.com", "12345678901")

	tests := []struct {
		name           string
		setupRequest   func(r *http.Request)
		expectedStatus int
		expectedUser   bool
	}{
		{
			name: "Valid Token in Cookie",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "access_token", Value: validToken})
			},
			expectedStatus: http.StatusOK,
			expectedUser:   true,
		},
		{
			name: "Valid Token in Header",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+validToken)
			},
			expectedStatus: http.StatusOK,
			expectedUser:   true,
		},
		{
			name:           "No Token",
			setupRequest:   func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
			expectedUser:   false,
		},
		{
			name: "Invalid Token",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer invalid")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedUser:   false,
		},
		{
			name: "Malformed Header",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", validToken)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedUser:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				userID, ok := UserIDFromContext(r.Context())
				if !ok && tt.expectedUser {
					t.Error("Expected user ID in context, got none")
				}
				if ok && !tt.expectedUser {
					t.Error("Unexpected user ID in context")
				}
				if ok && userID != 1 {
					t.Errorf("Expected user ID 1, got %d", userID)
				}

				taxID, ok := TaxIDFromContext(r.Context())
				if tt.expectedUser && (!ok || taxID != "12345678901") {
					t.Errorf("Expected tax id in context, got %q", taxID)
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := Auth(jwt)(nextHandler)

			req := httptest.NewRequest("GET", "/", nil)
			tt.setupRequest(req)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
		})
	}
}
