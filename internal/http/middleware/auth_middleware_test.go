package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/you/schedulo/domain"
	"github.com/you/schedulo/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(tokenSvc domain.TokenService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokenSvc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func validatingTokenSvc(err error) *mocks.MockTokenService {
	svc := mocks.NewMockTokenService()
	svc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		if token != "good-token" {
			return nil, domain.ErrTokenInvalid
		}
		if err != nil {
			return nil, err
		}
		return &domain.TokenClaims{UserID: "user-123"}, nil
	}
	return svc
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		setupRequest   func(*http.Request)
		validateErr    error
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "valid session cookie",
			setupRequest: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good-token"})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "user-123",
		},
		{
			name: "bearer header fallback",
			setupRequest: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer good-token")
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "user-123",
		},
		{
			name: "cookie wins over header",
			setupRequest: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good-token"})
				req.Header.Set("Authorization", "Bearer bad-token")
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "user-123",
		},
		{
			name:           "no token at all",
			setupRequest:   func(req *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "No token provided",
		},
		{
			name: "malformed authorization header",
			setupRequest: func(req *http.Request) {
				req.Header.Set("Authorization", "good-token")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "No token provided",
		},
		{
			name: "invalid token",
			setupRequest: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "bad-token"})
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid token",
		},
		{
			name: "expired token",
			setupRequest: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good-token"})
			},
			validateErr:    domain.ErrTokenExpired,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Token expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newProtectedRouter(validatingTokenSvc(tt.validateErr))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.setupRequest(req)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken("abc"))
	assert.Equal(t, "", bearerToken(""))
}
