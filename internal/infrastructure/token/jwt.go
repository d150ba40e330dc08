package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// ErrMissingSecret is returned by NewJWTCodec when no signing key is configured.
var ErrMissingSecret = errors.New("token: signing secret is empty")

// Config holds the token signing configuration.
type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// claims is the wire payload of an access token. It implements jwt.Claims
// itself so that iat and exp keep sub-second precision.
type claims struct {
	Role      string   `json:"role"`
	Subject   string   `json:"sub"`
	Issuer    string   `json:"iss,omitempty"`
	ID        string   `json:"jti,omitempty"`
	IssuedAt  *instant `json:"iat,omitempty"`
	ExpiresAt *instant `json:"exp,omitempty"`
}

func (c claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt.numeric(), nil }
func (c claims) GetIssuedAt() (*jwt.NumericDate, error) { return c.IssuedAt.numeric(), nil }
func (c claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c claims) GetIssuer() (string, error) { return c.Issuer, nil }
func (c claims) GetSubject() (string, error) { return c.Subject, nil }
func (c claims) GetAudience() (jwt.ClaimStrings, error) { return nil, nil }

// instant is a JWT NumericDate encoded as decimal seconds with up to
// nanosecond digits. Decoding parses the digits directly, never via float64.
type instant time.Time

func at(t time.Time) *instant {
	i := instant(t)
	return &i
}

func (i *instant) numeric() *jwt.NumericDate {
	if i == nil {
		return nil
	}
	return &jwt.NumericDate{Time: time.Time(*i)}
}

func (i instant) MarshalJSON() ([]byte, error) {
	t := time.Time(i)
	out := strconv.FormatInt(t.Unix(), 10)
	if ns := t.Nanosecond(); ns != 0 {
		out += "." + strings.TrimRight(fmt.Sprintf("%09d", ns), "0")
	}
	return []byte(out), nil
}

func (i *instant) UnmarshalJSON(b []byte) error {
	whole, frac, _ := strings.Cut(string(b), ".")
	sec, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fmt.Errorf("numeric date %q: %w", b, err)
	}
	if strings.TrimLeft(frac, "0123456789") != "" {
		return fmt.Errorf("numeric date %q: invalid fraction", b)
	}
	if len(frac) > 9 {
		frac = frac[:9]
	}
	var ns int64
	if frac != "" {
		ns, err = strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
		if err != nil {
			return fmt.Errorf("numeric date %q: %w", b, err)
		}
	}
	*i = instant(time.Unix(sec, ns))
	return nil
}

// JWTCodec mints and verifies HS256 compact JWS tokens.
// Implements ports.TokenCodec.
type JWTCodec struct {
	key    []byte
	ttl    time.Duration
	issuer string
	parser *jwt.Parser
}

// NewJWTCodec creates a codec bound to cfg.Secret.
func NewJWTCodec(cfg Config) (*JWTCodec, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWTCodec{
		key:    []byte(cfg.Secret),
		ttl:    ttl,
		issuer: cfg.Issuer,
		parser: jwt.NewParser(),
	}, nil
}

// TTL returns the lifetime given to minted tokens.
func (c *JWTCodec) TTL() time.Duration { return c.ttl }

// Mint issues a token for userID valid from now until now+TTL.
func (c *JWTCodec) Mint(userID int64, role domain.Role, now time.Time) (string, error) {
	payload := claims{
		Role:      string(role),
		ID:        uuid.NewString(),
		Issuer:    c.issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  at(now),
		ExpiresAt: at(now.Add(c.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature over the exact signed bytes before decoding
// anything, then validates the claims against now. A token is expired once
// now reaches its expiry instant.
func (c *JWTCodec) Verify(raw string, now time.Time) (domain.TokenClaims, error) {
	dot := strings.LastIndexByte(raw, '.')
	if dot <= 0 {
		return domain.TokenClaims{}, domain.ErrTokenMalformed
	}
	sig, err := c.parser.DecodeSegment(raw[dot+1:])
	if err != nil {
		return domain.TokenClaims{}, domain.ErrTokenMalformed
	}
	if err := jwt.SigningMethodHS256.Verify(raw[:dot], sig, c.key); err != nil {
		return domain.TokenClaims{}, domain.ErrTokenSignatureInvalid
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	var payload claims
	_, err = jwt.ParseWithClaims(raw, &payload, func(*jwt.Token) (any, error) {
		return c.key, nil
	}, opts...)
	if err != nil {
		return domain.TokenClaims{}, mapError(err)
	}

	sub, err := strconv.ParseInt(payload.Subject, 10, 64)
	if err != nil || sub <= 0 {
		return domain.TokenClaims{}, domain.ErrTokenMalformed
	}
	role := domain.Role(payload.Role)
	if !role.Valid() {
		return domain.TokenClaims{}, domain.ErrTokenMalformed
	}

	out := domain.TokenClaims{
		ID:        payload.ID,
		Subject:   sub,
		Role:      role,
		ExpiresAt: time.Time(*payload.ExpiresAt),
	}
	if payload.IssuedAt != nil {
		out.IssuedAt = time.Time(*payload.IssuedAt)
	}
	return out, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		return domain.ErrTokenMalformed
	}
}
