package auth

import (
	"flag"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"
	"github.com/urfave/cli"

	"github.com/playlizt-io/playlizt-server/models"
)

func TestNew(t *testing.T) {
	app := cli.NewApp()
	flagSet := flag.NewFlagSet("test", flag.ContinueOnError)
	flagSet.String(jwtSecretFlag, "secret123", "")
	flagSet.Int(jwtExpireHoursFlag, 24, "")
	c := cli.NewContext(app, flagSet, nil)

	// The secret flag carries a default, so auth is always configured.
	a := New(c, nil)
	if a == nil {
		t.Fatal("expected a configured auth service")
	}
	if a.expire != 24*time.Hour {
		t.Errorf("unexpected expire %v", a.expire)
	}
}

func newTestAuth() *Auth {
	return &Auth{
		secret: []byte("test-secret"),
		expire: time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	a := newTestAuth()
	u := &models.User{
		UserID: uuid.NewV4(),
		Email:  "user@example.com",
	}
	token, err := a.issueToken(u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed, err := a.parseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.ID != u.UserID {
		t.Errorf("got id %v, want %v", parsed.ID, u.UserID)
	}
	if parsed.Email != u.Email {
		t.Errorf("got email %v, want %v", parsed.Email, u.Email)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	a := newTestAuth()
	u := &models.User{UserID: uuid.NewV4(), Email: "user@example.com"}
	token, err := a.issueToken(u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := &Auth{secret: []byte("other-secret"), expire: time.Hour}
	if _, err := other.parseToken(token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	a := &Auth{secret: []byte("test-secret"), expire: -time.Hour}
	u := &models.User{UserID: uuid.NewV4(), Email: "user@example.com"}
	token, err := a.issueToken(u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.parseToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	a := newTestAuth()
	if _, err := a.parseToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestHasAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := newTestAuth()
	u := &models.User{UserID: uuid.NewV4(), Email: "user@example.com"}
	token, err := a.issueToken(u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := gin.New()
	a.RegisterHandler(r)
	r.GET("/private", HasAuth, func(c *gin.Context) {
		c.String(http.StatusOK, GetUserFromContext(c).Email)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"no header", "", http.StatusUnauthorized},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/private", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("got status %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && w.Body.String() != u.Email {
				t.Errorf("got body %q, want %q", w.Body.String(), u.Email)
			}
		})
	}
}
