package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/ichramsyah/bebasblog-backend/database/storetest"
	"github.com/ichramsyah/bebasblog-backend/helper"
	"github.com/ichramsyah/bebasblog-backend/models"
)

func newAuthService(t *testing.T) (*AuthService, *storetest.Store) {
	t.Helper()
	store := storetest.New()
	return NewAuthService(store.Users, helper.NewTokenService("test-secret"), "default.png", "hello"), store
}

func register(t *testing.T, svc *AuthService, username, email string) *models.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), RegisterInput{Username: username, Email: email, Password: "password1"})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return resp
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected status %d, got nil error", status)
	}
	if got := helper.StatusOf(err); got != status {
		t.Fatalf("expected status %d, got %d (%v)", status, got, err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, store := newAuthService(t)
	resp := register(t, svc, "alice", "Alice@Example.com")

	if resp.Token == "" {
		t.Fatalf("no token issued")
	}
	if resp.Email != "alice@example.com" {
		t.Fatalf("email not lowercased: %q", resp.Email)
	}
	raw, ok := store.RawUser(resp.ID)
	if !ok {
		t.Fatalf("user not stored")
	}
	if raw.Password == "password1" || raw.Password == "" {
		t.Fatalf("password stored in plaintext or missing: %q", raw.Password)
	}
	if raw.Provider != models.ProviderLocal {
		t.Fatalf("provider = %q", raw.Provider)
	}
	if raw.ProfilePictureURL != "default.png" {
		t.Fatalf("default picture not applied: %q", raw.ProfilePictureURL)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice2", Email: "ALICE@example.com", Password: "password1"})
	wantStatus(t, err, http.StatusConflict)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)
	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "other@example.com", Password: "password1"})
	wantStatus(t, err, http.StatusConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	cases := []RegisterInput{
		{Email: "a@example.com", Password: "password1"},
		{Username: "alice", Password: "password1"},
		{Username: "alice", Email: "a@example.com"},
		{Username: "alice", Email: "not-an-email", Password: "password1"},
		{Username: "al", Email: "a@example.com", Password: "password1"},
		{Username: "al ice", Email: "a@example.com", Password: "password1"},
		{Username: "alice", Email: "a@example.com", Password: "123"},
	}
	for _, in := range cases {
		_, err := svc.Register(context.Background(), in)
		wantStatus(t, err, http.StatusBadRequest)
	}
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, _ := newAuthService(t)
	reg := register(t, svc, "alice", "alice@example.com")

	resp, err := svc.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	me, err := svc.Authenticate(context.Background(), "Bearer "+resp.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if me.ID != reg.ID || me.Username != "alice" {
		t.Fatalf("principal = %+v", me)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	register(t, svc, "alice", "alice@example.com")

	resp, err := svc.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "wrong-password"})
	wantStatus(t, err, http.StatusUnauthorized)
	if resp != nil {
		t.Fatalf("token returned on failed login")
	}

	_, err = svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "password1"})
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestAuthenticateRejects(t *testing.T) {
	svc, store := newAuthService(t)
	reg := register(t, svc, "alice", "alice@example.com")

	for _, header := range []string{"", reg.Token, "Basic " + reg.Token, "Bearer ", "Bearer garbage"} {
		_, err := svc.Authenticate(context.Background(), header)
		wantStatus(t, err, http.StatusUnauthorized)
	}

	store.DeleteUser(reg.ID)
	_, err := svc.Authenticate(context.Background(), "Bearer "+reg.Token)
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestFederatedLoginCreatesThenReuses(t *testing.T) {
	svc, store := newAuthService(t)
	profile := models.ExternalProfile{
		Provider:    models.ProviderGoogle,
		ProviderID:  "g-123",
		Email:       "Budi@Gmail.com",
		DisplayName: "Budi Santoso",
		PictureURL:  "https://pic.example/b.png",
	}

	first, err := svc.FederatedLogin(context.Background(), profile)
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	if !strings.HasPrefix(first.Username, "budisantoso") {
		t.Fatalf("username = %q", first.Username)
	}
	raw, _ := store.RawUser(first.ID)
	if raw.Provider != models.ProviderGoogle || raw.HasPassword() {
		t.Fatalf("federated user should have google origin and no password: %+v", raw)
	}
	if raw.Bio != "hello" || raw.ProfilePictureURL != "https://pic.example/b.png" {
		t.Fatalf("profile defaults not applied: %+v", raw)
	}

	second, err := svc.FederatedLogin(context.Background(), profile)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second login created a new user")
	}

	me, err := svc.AuthenticateToken(context.Background(), second.Token)
	if err != nil || me.ID != first.ID {
		t.Fatalf("federated token does not resolve: %v", err)
	}

	// No password means local login can never succeed for this account.
	_, err = svc.Login(context.Background(), LoginInput{Email: "budi@gmail.com", Password: ""})
	wantStatus(t, err, http.StatusBadRequest)
	_, err = svc.Login(context.Background(), LoginInput{Email: "budi@gmail.com", Password: "anything"})
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestFederatedLoginLinksExistingLocalUser(t *testing.T) {
	svc, _ := newAuthService(t)
	reg := register(t, svc, "alice", "alice@example.com")

	resp, err := svc.FederatedLogin(context.Background(), models.ExternalProfile{
		Provider: models.ProviderGoogle, Email: "alice@example.com", DisplayName: "Alice",
	})
	if err != nil {
		t.Fatalf("federated login: %v", err)
	}
	if resp.ID != reg.ID {
		t.Fatalf("expected existing user to be reused")
	}
}

func TestFederatedLoginRequiresEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.FederatedLogin(context.Background(), models.ExternalProfile{Provider: models.ProviderGoogle, DisplayName: "X"})
	wantStatus(t, err, http.StatusBadRequest)
}
