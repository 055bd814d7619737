package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Dosada05/betting-league/models"
)

func newAuthFixture() (AuthService, *fakeUserRepo, *fakePlayerRepo, *fakeRefereeRepo) {
	userRepo := newFakeUserRepo()
	playerRepo := newFakePlayerRepo()
	refereeRepo := newFakeRefereeRepo()
	return NewAuthService(userRepo, playerRepo, refereeRepo), userRepo, playerRepo, refereeRepo
}

func TestRegisterBettorGetsWelcomeBalance(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ana",
		LastName:  "Lima",
		Email:     "ana@example.com",
		Password:  "supersecret",
		Role:      models.RoleBettor,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !user.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("bettor balance = %s, want 100", user.Balance)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked in response")
	}
}

func TestRegisterPlayerCreatesProfileWithZeroBalance(t *testing.T) {
	svc, _, playerRepo, _ := newAuthFixture()

	level := 3
	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Bruno",
		LastName:  "Souza",
		Email:     "bruno@example.com",
		Password:  "supersecret",
		Role:      models.RolePlayer,
		Level:     &level,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !user.Balance.IsZero() {
		t.Errorf("player balance = %s, want 0", user.Balance)
	}

	players, _ := playerRepo.List(context.Background())
	if len(players) != 1 {
		t.Fatalf("player profiles = %d, want 1", len(players))
	}
	if players[0].UserID != user.ID || players[0].Level != 3 {
		t.Errorf("player profile = %+v, want user_id=%d level=3", players[0], user.ID)
	}
}

func TestRegisterRefereeCreatesProfile(t *testing.T) {
	svc, _, _, refereeRepo := newAuthFixture()

	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Carla",
		LastName:  "Reis",
		Email:     "carla@example.com",
		Password:  "supersecret",
		Role:      models.RoleReferee,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	referees, _ := refereeRepo.List(context.Background())
	if len(referees) != 1 || referees[0].UserID != user.ID {
		t.Fatalf("referee profiles = %+v, want one for user %d", referees, user.ID)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Eve",
		LastName:  "Admin",
		Email:     "eve@example.com",
		Password:  "supersecret",
		Role:      models.RoleAdmin,
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Dan",
		LastName:  "Short",
		Email:     "dan@example.com",
		Password:  "short",
		Role:      models.RoleBettor,
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("err = %v, want ErrPasswordTooShort", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	input := RegisterInput{
		FirstName: "Ana",
		LastName:  "Lima",
		Email:     "ana@example.com",
		Password:  "supersecret",
		Role:      models.RoleBettor,
	}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrUserEmailConflict) {
		t.Fatalf("err = %v, want ErrUserEmailConflict", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ana",
		LastName:  "Lima",
		Email:     "ana@example.com",
		Password:  "supersecret",
		Role:      models.RoleBettor,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("logged in user = %q", user.Email)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrongpass"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrAuthInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "supersecret"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrAuthInvalidCredentials", err)
	}
}
