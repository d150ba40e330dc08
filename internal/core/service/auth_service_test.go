package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
	"github.com/travelplanner/booking-system/internal/infrastructure/db/memory"
	"github.com/travelplanner/booking-system/internal/infrastructure/token"
)

const testSecret = "service-test-secret-with-at-least-32-bytes"

type authFixture struct {
	svc         *AuthService
	users       *memory.UserRepository
	codec       *token.JWTCodec
	revocations *stubRevocations
	audit       *recordingAudit
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	codec, err := token.NewJWTCodec(token.Config{Secret: testSecret, TTL: time.Hour})
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	f := &authFixture{
		users:       memory.NewStore().Users(),
		codec:       codec,
		revocations: newStubRevocations(),
		audit:       &recordingAudit{},
	}
	f.svc = NewAuthService(f.users, codec, f.revocations, f.audit, zerolog.Nop()).WithClock(fixedClock)
	return f
}

func (f *authFixture) register(t *testing.T, email, password string) *domain.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), ports.RegisterInput{Name: "Test", Email: email, Password: password})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture(t)

	user := f.register(t, "  Alice@Example.com ", "pass1234")
	if user.ID == 0 {
		t.Fatalf("expected an id to be assigned")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if user.Role != domain.RoleUser || !user.Active {
		t.Fatalf("expected active USER, got role=%s active=%v", user.Role, user.Active)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newAuthFixture(t)

	cases := []ports.RegisterInput{
		{Name: "", Email: "a@example.com", Password: "pass1234"},
		{Name: "A", Email: "", Password: "pass1234"},
		{Name: "A", Email: "a@example.com", Password: ""},
		{Name: "A", Email: "a@example.com", Password: "short"},
	}
	for _, in := range cases {
		if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newAuthFixture(t)

	f.register(t, "bob@example.com", "pass1234")
	_, err := f.svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "BOB@example.com", Password: "pass5678"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_CreateAdmin(t *testing.T) {
	f := newAuthFixture(t)

	admin, err := f.svc.CreateAdmin(context.Background(), ports.RegisterInput{Name: "Root", Email: "root@example.com", Password: "admin-pass"})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN, got %s", admin.Role)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "carol@example.com", "s3cret-pass")

	res, err := f.svc.Login(context.Background(), "Carol@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.ID != user.ID {
		t.Fatalf("unexpected user: %+v", res.User)
	}

	claims, err := f.codec.Verify(res.Token, fixedNow)
	if err != nil {
		t.Fatalf("minted token does not verify: %v", err)
	}
	if claims.Subject != user.ID || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.Equal(fixedNow.Add(time.Hour)) {
		t.Fatalf("expected expiry %v, got %v", fixedNow.Add(time.Hour), claims.ExpiresAt)
	}

	if got := f.audit.actions(); len(got) != 1 || got[0] != domain.AuditLoginSucceeded {
		t.Fatalf("unexpected audit trail: %v", got)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "dave@example.com", "goodpass")

	_, wrongPass := f.svc.Login(context.Background(), "dave@example.com", "badpass1")
	_, unknown := f.svc.Login(context.Background(), "ghost@example.com", "goodpass")

	if wrongPass != domain.ErrInvalidCredentials || unknown != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", wrongPass, unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPass, unknown)
	}
}

func TestAuthService_Login_Inactive(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "erin@example.com", "goodpass")
	if err := f.users.SetActive(context.Background(), user.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err := f.svc.Login(context.Background(), "erin@example.com", "goodpass")
	if !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("inactive must be distinguishable from invalid credentials")
	}
}

type failingStore struct{ err error }

func (s failingStore) FindByID(context.Context, int64) (*domain.User, error) { return nil, s.err }
func (s failingStore) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, s.err
}
func (s failingStore) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, s.err
}

func TestAuthService_Login_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewAuthService(failingStore{err: boom}, &stubCodec{}, nil, nil, zerolog.Nop())

	_, err := svc.Login(context.Background(), "x@example.com", "whatever")
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failures must not look like bad credentials")
	}
}

func TestAuthService_Logout_RevokesForRemainingLifetime(t *testing.T) {
	f := newAuthFixture(t)
	id := domain.Identity{UserID: 5, Role: domain.RoleUser, TokenID: "jti-1", ExpiresAt: fixedNow.Add(30 * time.Minute)}

	if err := f.svc.Logout(context.Background(), id); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if ttl := f.revocations.revoked["jti-1"]; ttl != 30*time.Minute {
		t.Fatalf("expected 30m revocation, got %v", ttl)
	}

	expired := domain.Identity{UserID: 5, TokenID: "jti-2", ExpiresAt: fixedNow.Add(-time.Second)}
	if err := f.svc.Logout(context.Background(), expired); err != nil {
		t.Fatalf("logout expired: %v", err)
	}
	if _, ok := f.revocations.revoked["jti-2"]; ok {
		t.Fatalf("expired tokens need no revocation entry")
	}
}

func TestAuthService_Logout_WithoutRevocationStore(t *testing.T) {
	svc := NewAuthService(memory.NewStore().Users(), &stubCodec{}, nil, nil, zerolog.Nop())
	if err := svc.Logout(context.Background(), domain.Identity{UserID: 1, TokenID: "x", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("logout without store: %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "fay@example.com", "goodpass")

	got, err := f.svc.Me(context.Background(), domain.Identity{UserID: user.ID, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if got.Email != "fay@example.com" {
		t.Fatalf("unexpected user %+v", got)
	}

	if _, err := f.svc.Me(context.Background(), domain.Identity{UserID: 999}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
