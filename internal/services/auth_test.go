package services

import (
	"context"
	"net/http"
	"testing"

	authrepo "github.com/tatarby/backend/internal/data/repos/auth"
	userrepo "github.com/tatarby/backend/internal/data/repos/user"
	"github.com/tatarby/backend/internal/data/repos/testutil"
	"github.com/tatarby/backend/internal/pkg/apierr"
	"github.com/tatarby/backend/internal/requestdata"
)

const testJWTSecret = "test-secret"

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := testutil.NewDB(t)
	log := testutil.NewLogger(t)
	return NewAuthService(db, log, userrepo.NewUserRepo(db, log), authrepo.NewUserTokenRepo(db, log), testJWTSecret)
}

func TestRegister_ReturnsTokenAndPrincipalResolves(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterInput{
		Email:     "Alice@Example.com",
		Password:  "s3cret",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Password == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}

	authed, err := svc.ResolvePrincipal(ctx, token)
	if err != nil {
		t.Fatalf("resolve principal: %v", err)
	}
	rd := requestdata.GetRequestData(authed)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("principal not attached to context")
	}
}

func TestRegister_ValidatesFields(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register(context.Background(), RegisterInput{})
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 validation error, got %v", err)
	}
	for _, field := range []string{"email", "password", "first_name", "last_name"} {
		if len(apiErr.Fields[field]) == 0 {
			t.Fatalf("expected error for field %q", field)
		}
	}
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	in := RegisterInput{Email: "dup@example.com", Password: "pw", FirstName: "A", LastName: "B"}

	if _, _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := svc.Register(ctx, in)
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if got := apiErr.Fields["email"]; len(got) != 1 || got[0] != "user with this email already exists." {
		t.Fatalf("unexpected email errors: %v", got)
	}
}

func TestLogin_ReusesExistingToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, registered, err := svc.Register(ctx, RegisterInput{
		Email: "bob@example.com", Password: "pw", FirstName: "Bob", LastName: "Jones",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login(ctx, "bob@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != registered {
		t.Fatalf("expected the registration token back, got a new one")
	}
}

func TestLogin_WrongPasswordUnauthorized(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{
		Email: "carol@example.com", Password: "pw", FirstName: "C", LastName: "D",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, tc := range []struct{ email, password string }{
		{"carol@example.com", "wrong"},
		{"nobody@example.com", "pw"},
	} {
		_, err := svc.Login(ctx, tc.email, tc.password)
		apiErr := apierr.From(err)
		if apiErr == nil || apiErr.Status != http.StatusUnauthorized {
			t.Fatalf("login(%q): expected 401, got %v", tc.email, err)
		}
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, token, err := svc.Register(ctx, RegisterInput{
		Email: "dave@example.com", Password: "pw", FirstName: "E", LastName: "F",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	authed, err := svc.ResolvePrincipal(ctx, token)
	if err != nil {
		t.Fatalf("resolve principal: %v", err)
	}
	if err := svc.Logout(authed); err != nil {
		t.Fatalf("logout: %v", err)
	}

	_, err = svc.ResolvePrincipal(ctx, token)
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %v", err)
	}

	// Logging back in mints a fresh token since the old row is gone.
	again, err := svc.Login(ctx, "dave@example.com", "pw")
	if err != nil {
		t.Fatalf("login after logout: %v", err)
	}
	if again == token {
		t.Fatalf("expected a new token after logout")
	}
}

func TestResolvePrincipal_RejectsForgedToken(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.ResolvePrincipal(context.Background(), "not-a-jwt")
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
