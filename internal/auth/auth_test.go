package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash equals the plaintext password")
	}
	if !CheckPasswordHash("hunter2", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	secret := "test-secret"

	tokenString, err := NewAccessToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("ParseWithClaims: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is not valid")
	}
	if claims.UserID != userID {
		t.Errorf("UserID claim = %s, want %s", claims.UserID, userID)
	}
	if claims.Issuer != "finflow-backend" {
		t.Errorf("issuer = %q, want finflow-backend", claims.Issuer)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tokenString, err := NewAccessToken(uuid.New(), "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims := &CustomClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err == nil {
		t.Fatal("expired token parsed without error")
	}
}
