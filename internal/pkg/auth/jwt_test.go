package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/examsync/examsync/internal/app/models"
)

func testJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "examsync-test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       7,
		Email:    "jane@campus.edu",
		RoleType: models.RoleExaminer,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := testJWTService(time.Hour)

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := service.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("empty token in pair")
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != 86400 {
		t.Errorf("refreshExpiresIn = %d, want 86400", refreshExpiresIn)
	}

	claims, err := service.ValidateAndExtractClaims(accessToken)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims() error = %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != "jane@campus.edu" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.RoleType != "EXAMINER" {
		t.Errorf("RoleType = %q, want EXAMINER", claims.RoleType)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	service := testJWTService(-time.Minute)

	accessToken, _, _, _, err := service.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	if _, err := service.ValidateToken(accessToken); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrExpiredToken)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := testJWTService(time.Hour)
	verifier := NewJWTService(JWTConfig{
		SecretKey:       "other-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "examsync-test",
	})

	accessToken, _, _, _, err := issuer.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	if _, err := verifier.ValidateToken(accessToken); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}
}

func TestValidateAndExtractClaimsRejectsEmpty(t *testing.T) {
	service := testJWTService(time.Hour)
	if _, err := service.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateAndExtractClaims(\"\") error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc123", "abc123", false},
		{"abc123", "abc123", false},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if (err != nil) != tt.wantErr {
			t.Errorf("ExtractBearerToken(%q) error = %v, wantErr %v", tt.header, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
