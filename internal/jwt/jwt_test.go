package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

var secretKey string = "testJwtKey"
var user domain.User = domain.User{Id: 1, Email: "test@example.com"}

func TestDecodeTokenCorrect(t *testing.T) {
	jwt := New(secretKey, 10*time.Second)
	token, err := jwt.NewToken(user)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := jwt.DecodeToken(token)
	if err != nil {
		t.Fatal(err)
	}
	claims, ok := decoded.Claims.(jwtlib.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", decoded.Claims)
	}
	if uid := claims["uid"].(float64); uid != 1 {
		t.Errorf("uid %v != 1", uid)
	}
	if email := claims["email"]; email != "test@example.com" {
		t.Errorf("%s != %s", email, "test@example.com")
	}
}

func TestDecodeTokenExpired(t *testing.T) {
	jwt := New(secretKey, -time.Second)
	token, err := jwt.NewToken(user)
	if err != nil {
		t.Fatal(err)
	}

	_, err = jwt.DecodeToken(token)
	if err == nil {
		t.Errorf("We shouldn't decode expired token")
	}
}

func TestDecodeTokenInvalidSecretKey(t *testing.T) {
	token, err := New(secretKey, 10*time.Second).NewToken(user)
	if err != nil {
		t.Fatal(err)
	}

	_, err = New("invalidSecret", 10*time.Second).DecodeToken(token)
	if err == nil {
		t.Errorf("We shouldn't decode token with invalid secret")
	}
}
