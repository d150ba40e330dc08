package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

const minPasswordLen = 8

// dummyHash is compared against when the email is unknown so that both login
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("travelplanner-dummy-password"), bcrypt.DefaultCost)
	return h
})

// AuthService implements registration, login and logout.
type AuthService struct {
	users       ports.CredentialStore
	codec       ports.TokenCodec
	revocations ports.RevocationStore
	audit       ports.AuditRecorder
	now         func() time.Time
	log         zerolog.Logger
}

// NewAuthService wires the login orchestrator. revocations may be nil, in
// which case Logout keeps no server-side state. audit may be nil.
func NewAuthService(
	users ports.CredentialStore,
	codec ports.TokenCodec,
	revocations ports.RevocationStore,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	if audit == nil {
		audit = discardAudit{}
	}
	return &AuthService{
		users:       users,
		codec:       codec,
		revocations: revocations,
		audit:       audit,
		now:         time.Now,
		log:         log,
	}
}

// WithClock replaces the time source. Used by tests and tooling.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Register creates an active USER account. The role is never taken from input.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.createUser(ctx, in, domain.RoleUser)
}

// CreateAdmin creates an active ADMIN account. It is only reachable from
// administrative tooling, never from an HTTP route.
func (s *AuthService) CreateAdmin(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.createUser(ctx, in, domain.RoleAdmin)
}

func (s *AuthService) createUser(ctx context.Context, in ports.RegisterInput, role domain.Role) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", created.ID).Str("role", string(role)).Msg("user registered")
	return created, nil
}

// Login authenticates email/password and mints a token. Unknown emails and
// wrong passwords fail identically; inactive accounts fail distinctly.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		s.audit.Record(domain.AuditEvent{Action: domain.AuditLoginFailed, Email: email, OccurredAt: s.now().UTC()})
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if !user.Active {
		s.audit.Record(domain.AuditEvent{Action: domain.AuditLoginInactive, UserID: user.ID, Email: email, OccurredAt: s.now().UTC()})
		return nil, domain.ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.audit.Record(domain.AuditEvent{Action: domain.AuditLoginFailed, UserID: user.ID, Email: email, OccurredAt: s.now().UTC()})
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	token, err := s.codec.Mint(user.ID, user.Role, now)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.audit.Record(domain.AuditEvent{Action: domain.AuditLoginSucceeded, UserID: user.ID, Email: email, OccurredAt: now.UTC()})
	s.log.Info().Int64("user_id", user.ID).Msg("login succeeded")

	return &ports.LoginResult{Token: token, User: user}, nil
}

// Logout revokes the caller's current token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, id domain.Identity) error {
	s.audit.Record(domain.AuditEvent{Action: domain.AuditLogout, UserID: id.UserID, OccurredAt: s.now().UTC()})

	if s.revocations == nil || id.TokenID == "" {
		return nil
	}
	ttl := id.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, id.TokenID, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Me returns the stored account of the caller.
func (s *AuthService) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.users.FindByID(ctx, id.UserID)
}

type discardAudit struct{}

func (discardAudit) Record(domain.AuditEvent) {}
