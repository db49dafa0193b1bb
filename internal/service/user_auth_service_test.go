package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aurora-mall/internal/config"
	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret-key-0123456789abcdef"
	svc := NewUserAuthService(cfg, repository.NewUserRepository(db), NewEmailService(&cfg.Email, &cfg.Site))
	return svc, db
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, err := svc.Register("Alice", "Alice@Example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.IsVerified {
		t.Fatalf("new user should not be verified")
	}
	if user.VerificationToken == "" {
		t.Fatalf("expected verification token to be set")
	}
	if user.Role != constants.UserRoleUser {
		t.Fatalf("expected role %q, got %q", constants.UserRoleUser, user.Role)
	}

	if _, _, _, err := svc.Login("alice@example.com", "s3cret-pass"); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified before verification, got %v", err)
	}

	if err := svc.VerifyEmail(user.VerificationToken); err != nil {
		t.Fatalf("verify email failed: %v", err)
	}
	if err := svc.VerifyEmail(user.VerificationToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("verification token should be single-use, got %v", err)
	}

	loggedIn, token, expiresAt, err := svc.Login("alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token expiry should be in the future")
	}
	if loggedIn.LastLoginAt == nil {
		t.Fatalf("expected last login time to be recorded")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != user.Role {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, err := svc.Register("Alice", "alice@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register("Alice Two", "ALICE@example.com", "another-pass"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, err := svc.Register("", "alice@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for empty name, got %v", err)
	}
	if _, err := svc.Register("Alice", "not-an-email", "s3cret-pass"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Register("Alice", "alice@example.com", "abc"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, err := svc.Register("Alice", "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.VerifyEmail(user.VerificationToken); err != nil {
		t.Fatalf("verify email failed: %v", err)
	}

	if _, _, _, err := svc.Login("alice@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("alice@example.com", "s3cret-pass"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, err := svc.Register("Alice", "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.VerifyEmail(user.VerificationToken); err != nil {
		t.Fatalf("verify email failed: %v", err)
	}

	if err := svc.ForgotPassword("nobody@example.com"); err != nil {
		t.Fatalf("forgot password for unknown email should be silent, got %v", err)
	}
	if err := svc.ForgotPassword("alice@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.ResetPasswordToken == "" || stored.ResetPasswordExpiresAt == nil {
		t.Fatalf("expected reset token and expiry to be set")
	}

	if err := svc.ResetPassword(stored.ResetPasswordToken, "abc"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := svc.ResetPassword(stored.ResetPasswordToken, "brand-new-pass"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}
	if err := svc.ResetPassword(stored.ResetPasswordToken, "brand-new-pass"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("reset token should be single-use, got %v", err)
	}

	if _, _, _, err := svc.Login("alice@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, _, _, err := svc.Login("alice@example.com", "brand-new-pass"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, err := svc.Register("Alice", "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.VerifyEmail(user.VerificationToken); err != nil {
		t.Fatalf("verify email failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong-pass", "brand-new-pass"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "s3cret-pass", "brand-new-pass"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, _, _, err := svc.Login("alice@example.com", "brand-new-pass"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, err := svc.Register("Alice", "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	newName := "Alice Liddell"
	updated, err := svc.UpdateProfile(user.ID, &newName)
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("expected name %q, got %q", newName, updated.Name)
	}

	profile, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if profile.Name != newName {
		t.Fatalf("profile name not persisted, got %q", profile.Name)
	}

	if _, err := svc.GetProfile(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
