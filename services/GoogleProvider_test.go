package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"golang.org/x/oauth2"

	"github.com/ichramsyah/bebasblog-backend/models"
)

func newFakeGoogle(t *testing.T, info googleUserInfo) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "access-123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(info)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func providerFor(srv *httptest.Server) *GoogleProvider {
	p := NewGoogleProvider("client-id", "client-secret", "http://localhost:5000/api/auth/google/callback")
	p.config.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	p.userInfoURL = srv.URL + "/userinfo"
	return p
}

func TestGoogleAuthCodeURL(t *testing.T) {
	p := NewGoogleProvider("client-id", "secret", "http://cb")
	u, err := url.Parse(p.AuthCodeURL("state-1"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("state") != "state-1" || q.Get("client_id") != "client-id" || q.Get("redirect_uri") != "http://cb" {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestGoogleExchange(t *testing.T) {
	srv := newFakeGoogle(t, googleUserInfo{
		Sub: "g-1", Name: "Budi", Email: "budi@gmail.com", EmailVerified: true, Picture: "http://pic",
	})
	p := providerFor(srv)

	profile, err := p.Exchange(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	want := models.ExternalProfile{
		Provider: models.ProviderGoogle, ProviderID: "g-1", Email: "budi@gmail.com", DisplayName: "Budi", PictureURL: "http://pic",
	}
	if profile != want {
		t.Fatalf("profile = %+v", profile)
	}

	if _, err := p.Exchange(context.Background(), "bad-code"); err == nil {
		t.Fatalf("expected error for rejected code")
	}
}

func TestGoogleExchangeDropsUnverifiedEmail(t *testing.T) {
	srv := newFakeGoogle(t, googleUserInfo{Sub: "g-2", Name: "X", Email: "x@gmail.com"})
	profile, err := providerFor(srv).Exchange(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if profile.Email != "" {
		t.Fatalf("unverified email kept: %q", profile.Email)
	}
}
