package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

func TestJWT_RoundTrip(t *testing.T) {
	j := NewJWT("secret", "cars-g", time.Hour)

	token, err := j.Issue(domain.Identity{Subject: "uid-1", Email: "a@example.com", Name: "Ann"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := j.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Subject != "uid-1" || id.Email != "a@example.com" || id.Name != "Ann" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestJWT_Rejects(t *testing.T) {
	good := NewJWT("secret", "cars-g", time.Hour)

	expired := NewJWT("secret", "cars-g", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.Issue(domain.Identity{Subject: "uid-1"})

	otherSecret, _ := NewJWT("other", "cars-g", time.Hour).Issue(domain.Identity{Subject: "uid-1"})
	otherIssuer, _ := NewJWT("secret", "someone-else", time.Hour).Issue(domain.Identity{Subject: "uid-1"})

	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "uid-1",
		"iss": "cars-g",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]string{
		"garbage":      "not-a-token",
		"expired":      expiredToken,
		"wrong secret": otherSecret,
		"wrong issuer": otherIssuer,
		"alg none":     noneAlg,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := good.Verify(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestJWT_IssueRequiresSubject(t *testing.T) {
	if _, err := NewJWT("secret", "cars-g", 0).Issue(domain.Identity{}); err == nil {
		t.Fatal("expected error for empty subject")
	}
}
