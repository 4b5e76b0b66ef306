package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bcexpress/tracking-api/internal/config"
	"github.com/bcexpress/tracking-api/internal/constants"
	"github.com/bcexpress/tracking-api/internal/models"
	"github.com/bcexpress/tracking-api/internal/repository"

	"gorm.io/gorm"
)

func newAuthTestService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-signing-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 1
	return NewAuthService(cfg, repository.NewUserRepository(db))
}

func seedAuthUser(t *testing.T, db *gorm.DB, svc *AuthService, username, password, status string) *models.User {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{
		Username:     username,
		Name:         "Test User",
		PasswordHash: hash,
		Role:         constants.RoleCabang,
		OriginBranch: "JAKARTA",
		Status:       status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return user
}

func TestLoginIssuesTokenWithBranchClaims(t *testing.T) {
	db := newSvcDB(t)
	svc := newAuthTestService(t, db)
	seedAuthUser(t, db, svc, "cabang.jakarta", "rahasia123", constants.UserStatusActive)

	user, token, expiresAt, err := svc.Login(context.Background(), "cabang.jakarta", "rahasia123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("expected signed token with expiry")
	}
	if user.LastLoginAt == nil {
		t.Fatalf("expected last_login_at set")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "cabang.jakarta" {
		t.Fatalf("claims identity mismatch: %+v", claims)
	}
	if claims.Role != constants.RoleCabang || claims.OriginBranch != "JAKARTA" {
		t.Fatalf("claims scope mismatch: role=%s branch=%s", claims.Role, claims.OriginBranch)
	}
}

func TestLoginRejectsBadPasswordAndUnknownUser(t *testing.T) {
	db := newSvcDB(t)
	svc := newAuthTestService(t, db)
	seedAuthUser(t, db, svc, "kurir.budi", "rahasia123", constants.UserStatusActive)

	if _, _, _, err := svc.Login(context.Background(), "kurir.budi", "salah"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "tidak.ada", "rahasia123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	db := newSvcDB(t)
	svc := newAuthTestService(t, db)
	seedAuthUser(t, db, svc, "cabang.nonaktif", "rahasia123", constants.UserStatusDisabled)

	if _, _, _, err := svc.Login(context.Background(), "cabang.nonaktif", "rahasia123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
}

func TestChangePasswordRevokesIssuedTokens(t *testing.T) {
	db := newSvcDB(t)
	svc := newAuthTestService(t, db)
	user := seedAuthUser(t, db, svc, "cabang.jakarta", "lama12345", constants.UserStatusActive)

	if err := svc.ChangePassword(context.Background(), user.ID, "salah", "baru12345"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong old password want ErrInvalidCredentials got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "lama12345", "baru12345"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var updated models.User
	if err := db.First(&updated, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if updated.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", user.TokenVersion+1, updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("expected token_invalid_before set")
	}
	if err := svc.VerifyPassword(updated.PasswordHash, "baru12345"); err != nil {
		t.Fatalf("new password should verify: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "cabang.jakarta", "lama12345"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
}

func TestParseJWTRejectsForeignSignature(t *testing.T) {
	db := newSvcDB(t)
	svc := newAuthTestService(t, db)
	user := seedAuthUser(t, db, svc, "cabang.jakarta", "rahasia123", constants.UserStatusActive)

	token, _, err := svc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	otherCfg := &config.Config{}
	otherCfg.JWT.SecretKey = "a-completely-different-signing-key-xyz"
	otherCfg.JWT.ExpireHours = 1
	other := NewAuthService(otherCfg, repository.NewUserRepository(db))

	if _, err := other.ParseJWT(token); err == nil {
		t.Fatalf("token signed with another key must not parse")
	}
}
