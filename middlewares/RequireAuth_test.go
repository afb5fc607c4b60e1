package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ichramsyah/bebasblog-backend/helper"
	"github.com/ichramsyah/bebasblog-backend/models"
)

type fakeAuth struct {
	me *models.Principal
}

func (f fakeAuth) Authenticate(_ context.Context, header string) (*models.Principal, error) {
	if header != "Bearer good" {
		return nil, helper.Unauthorized("not authorized")
	}
	return f.me, nil
}

func (f fakeAuth) AuthenticateToken(_ context.Context, token string) (*models.Principal, error) {
	if token != "good" {
		return nil, helper.Unauthorized("not authorized")
	}
	return f.me, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(me *models.Principal) *gin.Engine {
	r := gin.New()
	echo := func(c *gin.Context, p *models.Principal) {
		c.JSON(http.StatusOK, gin.H{"username": p.Username})
	}
	r.GET("/header", RequireAuth(fakeAuth{me: me}, echo))
	r.GET("/ws", RequireAuthOrQueryToken(fakeAuth{me: me}, echo))
	return r
}

func TestRequireAuth(t *testing.T) {
	me := &models.Principal{ID: primitive.NewObjectID(), Username: "alice"}
	r := newAuthRouter(me)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"bearer ok", "/header", "Bearer good", http.StatusOK},
		{"missing header", "/header", "", http.StatusUnauthorized},
		{"bad token", "/header", "Bearer bad", http.StatusUnauthorized},
		{"query token ignored without fallback", "/header?token=good", "", http.StatusUnauthorized},
		{"query token", "/ws?token=good", "", http.StatusOK},
		{"bad query token", "/ws?token=bad", "Bearer good", http.StatusUnauthorized},
		{"header fallback", "/ws", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tt.status == http.StatusOK && body["username"] != "alice" {
				t.Fatalf("principal not passed: %v", body)
			}
			if tt.status == http.StatusUnauthorized && body["message"] == "" {
				t.Fatalf("missing message: %v", body)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	if id == "" || w.Body.String() != id {
		t.Fatalf("request id %q, body %q", id, w.Body.String())
	}

	const given = "6f1c1c3e-58a4-4a2b-9b8c-2d0b8a2c4f11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != given {
		t.Fatalf("request id not echoed: %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not a uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got == "not a uuid" {
		t.Fatalf("invalid request id echoed")
	}
}
