package identity

import (
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	p := Fixed(domain.Authenticated("u1"))
	assert.Equal(t, domain.Authenticated("u1"), p.Current())

	cancel := p.Subscribe(func(domain.Mode) { t.Fatal("fixed provider must not notify") })
	cancel()
}

func TestSwitch_NotifiesOnChangeOnly(t *testing.T) {
	s := NewSwitch(domain.Anonymous())
	assert.Equal(t, domain.Anonymous(), s.Current())

	var seen []domain.Mode
	cancel := s.Subscribe(func(m domain.Mode) { seen = append(seen, m) })

	s.SignIn("u1")
	s.SignIn("u1")
	s.SignOut()
	s.SignOut()

	assert.Equal(t, []domain.Mode{domain.Authenticated("u1"), domain.Anonymous()}, seen)

	cancel()
	cancel()
	s.SignIn("u2")
	assert.Len(t, seen, 2)
	assert.Equal(t, domain.Authenticated("u2"), s.Current())
}

func TestSwitch_EmptyUserSignsOut(t *testing.T) {
	s := NewSwitch(domain.AnonymousIn("demo-cart:v1"))
	s.SignIn("u1")
	s.SignIn("")
	assert.Equal(t, domain.AnonymousIn("demo-cart:v1"), s.Current())
}

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret", "storefront", time.Hour)

	token, err := v.Issue("user-42")
	require.NoError(t, err)

	userID, err := v.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("secret", "storefront", time.Hour)

	other, err := NewVerifier("other-secret", "storefront", time.Hour).Issue("u1")
	require.NoError(t, err)

	expired := NewVerifier("secret", "storefront", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue("u1")
	require.NoError(t, err)

	wrongIssuer, err := NewVerifier("secret", "elsewhere", time.Hour).Issue("u1")
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "storefront"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", other},
		{"expired", old},
		{"wrong issuer", wrongIssuer},
		{"missing user", noUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifier_IssueRequiresUser(t *testing.T) {
	_, err := NewVerifier("secret", "", time.Hour).Issue("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
