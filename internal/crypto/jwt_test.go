package crypto

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}
	return token
}

func TestDecodeClaimsUserID(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"user_id": 42})

	claims, err := DecodeClaims(token)
	if err != nil {
		t.Fatalf("DecodeClaims() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("DecodeClaims() UserID = %d, want 42", claims.UserID)
	}
}

func TestDecodeClaimsNumericSubject(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "7", "email": "a@b.c"})

	claims, err := DecodeClaims(token)
	if err != nil {
		t.Fatalf("DecodeClaims() unexpected error: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("DecodeClaims() UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != "a@b.c" {
		t.Errorf("DecodeClaims() Email = %q, want a@b.c", claims.Email)
	}
}

func TestDecodeClaimsMalformed(t *testing.T) {
	if _, err := DecodeClaims("not-a-token"); err != ErrMalformedToken {
		t.Errorf("expected ErrMalformedToken, got %v", err)
	}
}

func TestUserFromToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"user_id": 42})

	user := UserFromToken(token)
	if user == nil {
		t.Fatal("UserFromToken() returned nil")
	}
	if user.ID != 42 {
		t.Errorf("UserFromToken() ID = %d, want 42", user.ID)
	}
}

func TestUserFromTokenNoIdentity(t *testing.T) {
	// Neither a usable numeric identifier nor an email: no derived user.
	token := signToken(t, jwt.MapClaims{"sub": "not-a-number"})

	if user := UserFromToken(token); user != nil {
		t.Errorf("UserFromToken() = %+v, want nil", user)
	}
}

func TestUserFromTokenMalformed(t *testing.T) {
	if user := UserFromToken("garbage"); user != nil {
		t.Errorf("UserFromToken() = %+v, want nil", user)
	}
}
