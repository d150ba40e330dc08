package token

import (
	"encoding/base64"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

const testSecret = "this-is-a-valid-token-secret-of-32-chars-or-more"

var issuedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestCodec(t *testing.T, ttl time.Duration) *JWTCodec {
	t.Helper()
	c, err := NewJWTCodec(Config{Secret: testSecret, TTL: ttl, Issuer: "travelplanner"})
	require.NoError(t, err)
	return c
}

func TestNewJWTCodec_RequiresSecret(t *testing.T) {
	_, err := NewJWTCodec(Config{})
	assert.ErrorIs(t, err, ErrMissingSecret)

	c, err := NewJWTCodec(Config{Secret: testSecret})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, c.TTL())
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	tok, err := c.Mint(42, domain.RoleUser, issuedAt)
	require.NoError(t, err)

	got, err := c.Verify(tok, issuedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.Subject)
	assert.Equal(t, domain.RoleUser, got.Role)
	assert.Equal(t, issuedAt, got.IssuedAt.UTC())
	assert.Equal(t, issuedAt.Add(time.Hour), got.ExpiresAt.UTC())
	assert.NotEmpty(t, got.ID)

	other, err := c.Mint(42, domain.RoleUser, issuedAt)
	require.NoError(t, err)
	otherClaims, err := c.Verify(other, issuedAt)
	require.NoError(t, err)
	assert.NotEqual(t, got.ID, otherClaims.ID, "each token carries its own id")
}

func TestJWTCodec_ExpiryBoundary(t *testing.T) {
	ttl := time.Hour
	c := newTestCodec(t, ttl)

	tok, err := c.Mint(7, domain.RoleAdmin, issuedAt)
	require.NoError(t, err)

	_, err = c.Verify(tok, issuedAt.Add(ttl-time.Second))
	assert.NoError(t, err)

	_, err = c.Verify(tok, issuedAt.Add(ttl-time.Nanosecond))
	assert.NoError(t, err)

	_, err = c.Verify(tok, issuedAt.Add(ttl))
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	_, err = c.Verify(tok, issuedAt.Add(ttl+time.Minute))
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestJWTCodec_SubSecondIssueTime(t *testing.T) {
	ttl := time.Hour
	c := newTestCodec(t, ttl)

	for _, offset := range []time.Duration{900 * time.Millisecond, 123456789 * time.Nanosecond, time.Nanosecond} {
		mintedAt := issuedAt.Add(offset)
		tok, err := c.Mint(1, domain.RoleUser, mintedAt)
		require.NoError(t, err)

		got, err := c.Verify(tok, mintedAt)
		require.NoError(t, err, "offset %s", offset)
		assert.Equal(t, mintedAt, got.IssuedAt.UTC())
		assert.Equal(t, mintedAt.Add(ttl), got.ExpiresAt.UTC())

		_, err = c.Verify(tok, mintedAt.Add(ttl-500*time.Millisecond))
		assert.NoError(t, err, "offset %s", offset)

		_, err = c.Verify(tok, mintedAt.Add(ttl-time.Nanosecond))
		assert.NoError(t, err, "offset %s", offset)

		_, err = c.Verify(tok, mintedAt.Add(ttl))
		assert.ErrorIs(t, err, domain.ErrTokenExpired, "offset %s", offset)
	}
}

func TestInstant_JSON(t *testing.T) {
	ts := time.Unix(1740830400, 900000000)
	b, err := at(ts).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "1740830400.9", string(b))

	whole, err := at(time.Unix(1740830400, 0)).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "1740830400", string(whole))

	var got instant
	require.NoError(t, got.UnmarshalJSON([]byte("1740830400.000000001")))
	assert.True(t, time.Unix(1740830400, 1).Equal(time.Time(got)))

	for _, bad := range []string{"1.7e9", "12.-5", "\"soon\""} {
		assert.Error(t, got.UnmarshalJSON([]byte(bad)), "input %s", bad)
	}
}

func TestJWTCodec_AnyBitFlipInSignedPartIsRejected(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	tok, err := c.Mint(42, domain.RoleUser, issuedAt)
	require.NoError(t, err)
	signed := strings.LastIndexByte(tok, '.')

	for i := 0; i < signed; i++ {
		for bit := 0; bit < 8; bit++ {
			b := []byte(tok)
			b[i] ^= 1 << bit
			_, err := c.Verify(string(b), issuedAt)
			if !assert.ErrorIs(t, err, domain.ErrTokenSignatureInvalid, "byte %d bit %d", i, bit) {
				return
			}
		}
	}
}

func TestJWTCodec_WrongKey(t *testing.T) {
	c := newTestCodec(t, time.Hour)
	other, err := NewJWTCodec(Config{Secret: "another-secret-that-is-also-long-enough!!", TTL: time.Hour, Issuer: "travelplanner"})
	require.NoError(t, err)

	tok, err := other.Mint(42, domain.RoleAdmin, issuedAt)
	require.NoError(t, err)

	_, err = c.Verify(tok, issuedAt)
	assert.ErrorIs(t, err, domain.ErrTokenSignatureInvalid)
}

func TestJWTCodec_AlgorithmMismatch(t *testing.T) {
	c := newTestCodec(t, time.Hour)
	payload := claims{
		Role:      string(domain.RoleAdmin),
		Subject:   "1",
		Issuer:    "travelplanner",
		ExpiresAt: at(issuedAt.Add(time.Hour)),
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, payload).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = c.Verify(hs512, issuedAt)
	assert.ErrorIs(t, err, domain.ErrTokenSignatureInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, payload).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.Verify(none, issuedAt)
	assert.ErrorIs(t, err, domain.ErrTokenSignatureInvalid)
}

func TestJWTCodec_Malformed(t *testing.T) {
	c := newTestCodec(t, time.Hour)

	for _, raw := range []string{"", "abc", ".sig", "a.b.!!!"} {
		_, err := c.Verify(raw, issuedAt)
		assert.ErrorIs(t, err, domain.ErrTokenMalformed, "input %q", raw)
	}
}

func TestJWTCodec_SignedButUndecodableClaims(t *testing.T) {
	c := newTestCodec(t, time.Hour)
	enc := base64.RawURLEncoding

	sign := func(header, body string) string {
		signing := enc.EncodeToString([]byte(header)) + "." + enc.EncodeToString([]byte(body))
		sig, err := jwt.SigningMethodHS256.Sign(signing, []byte(testSecret))
		require.NoError(t, err)
		return signing + "." + enc.EncodeToString(sig)
	}
	header := `{"alg":"HS256","typ":"JWT"}`
	exp := issuedAt.Add(time.Hour).Unix()

	cases := map[string]string{
		"not json":        "not-json",
		"no exp":          `{"sub":"1","role":"USER","iss":"travelplanner"}`,
		"non numeric sub": `{"sub":"alice","role":"USER","iss":"travelplanner","exp":` + itoa(exp) + `}`,
		"unknown role":    `{"sub":"1","role":"ROOT","iss":"travelplanner","exp":` + itoa(exp) + `}`,
		"foreign issuer":  `{"sub":"1","role":"USER","iss":"elsewhere","exp":` + itoa(exp) + `}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Verify(sign(header, body), issuedAt)
			assert.ErrorIs(t, err, domain.ErrTokenMalformed)
		})
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
