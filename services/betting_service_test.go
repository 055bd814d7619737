package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dosada05/betting-league/models"
)

type bettingFixture struct {
	svc       *bettingService
	userRepo  *fakeUserRepo
	matchRepo *fakeMatchRepo
	wagerRepo *fakeWagerRepo
	now       time.Time
}

func newBettingFixture() *bettingFixture {
	userRepo := newFakeUserRepo()
	matchRepo := newFakeMatchRepo()
	wagerRepo := newFakeWagerRepo()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	svc := NewBettingService(nil, matchRepo, wagerRepo, userRepo).(*bettingService)
	svc.now = func() time.Time { return now }

	return &bettingFixture{
		svc:       svc,
		userRepo:  userRepo,
		matchRepo: matchRepo,
		wagerRepo: wagerRepo,
		now:       now,
	}
}

func TestPlaceWagerDebitsBalance(t *testing.T) {
	f := newBettingFixture()
	user := f.userRepo.addUser(decimal.NewFromInt(100), models.RoleBettor)
	match := f.matchRepo.addMatch(1, 2, f.now.Add(time.Hour))

	wager, balance, err := f.svc.PlaceWager(context.Background(), user.ID, PlaceWagerInput{
		MatchID: match.ID,
		TeamID:  1,
		Amount:  decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("PlaceWager: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(70)) {
		t.Errorf("balance = %s, want 70", balance)
	}
	if wager.ID == 0 {
		t.Error("wager was not persisted")
	}

	stored, err := f.wagerRepo.GetByID(context.Background(), wager.ID)
	if err != nil {
		t.Fatalf("stored wager: %v", err)
	}
	if stored.Settled || stored.Won {
		t.Errorf("fresh wager settled=%v won=%v, want false/false", stored.Settled, stored.Won)
	}
}

func TestPlaceWagerInsufficientFundsLeavesBalanceUnchanged(t *testing.T) {
	f := newBettingFixture()
	user := f.userRepo.addUser(decimal.NewFromInt(20), models.RoleBettor)
	match := f.matchRepo.addMatch(1, 2, f.now.Add(time.Hour))

	_, _, err := f.svc.PlaceWager(context.Background(), user.ID, PlaceWagerInput{
		MatchID: match.ID,
		TeamID:  1,
		Amount:  decimal.NewFromInt(50),
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	balance, _ := f.userRepo.GetBalance(context.Background(), user.ID)
	if !balance.Equal(decimal.NewFromInt(20)) {
		t.Errorf("balance = %s after failed debit, want 20", balance)
	}
	if wagers, _ := f.wagerRepo.ListByUser(context.Background(), user.ID); len(wagers) != 0 {
		t.Errorf("wagers = %d after failed debit, want 0", len(wagers))
	}
}

func TestPlaceWagerRejectsPastKickoff(t *testing.T) {
	f := newBettingFixture()
	user := f.userRepo.addUser(decimal.NewFromInt(100), models.RoleBettor)

	// Kickoff in the past but match still unresolved.
	past := f.matchRepo.addMatch(1, 2, f.now.Add(-time.Minute))

	_, _, err := f.svc.PlaceWager(context.Background(), user.ID, PlaceWagerInput{
		MatchID: past.ID,
		TeamID:  1,
		Amount:  decimal.NewFromInt(10),
	})
	if !errors.Is(err, ErrMatchAlreadyStarted) {
		t.Fatalf("past kickoff err = %v, want ErrMatchAlreadyStarted", err)
	}
}

func TestPlaceWagerRejectsResolvedMatch(t *testing.T) {
	f := newBettingFixture()
	user := f.userRepo.addUser(decimal.NewFromInt(100), models.RoleBettor)
	resolved := f.matchRepo.addResolvedMatch(1, 2, 2, 0)

	_, _, err := f.svc.PlaceWager(context.Background(), user.ID, PlaceWagerInput{
		MatchID: resolved.ID,
		TeamID:  1,
		Amount:  decimal.NewFromInt(10),
	})
	if !errors.Is(err, ErrMatchAlreadyStarted) {
		t.Fatalf("resolved match err = %v, want ErrMatchAlreadyStarted", err)
	}
}

func TestPlaceWagerRejectsTeamNotInMatch(t *testing.T) {
	f := newBettingFixture()
	user := f.userRepo.addUser(decimal.NewFromInt(100), models.RoleBettor)
	match := f.matchRepo.addMatch(1, 2, f.now.Add(time.Hour))

	_, _, err := f.svc.PlaceWager(context.Background(), user.ID, PlaceWagerInput{
		MatchID: match.ID,
		TeamID:  7,
		Amount:  decimal.NewFromInt(10),
	})
	if !errors.Is(err, ErrTeamNotInMatch) {
		t.Fatalf("err = %v, want ErrTeamNotInMatch", err)
	}
}

func TestPlaceWagerRejectsNonPositiveAmount(t *testing.T) {
	f := newBettingFixture()
	user := f.userRepo.addUser(decimal.NewFromInt(100), models.RoleBettor)
	match := f.matchRepo.addMatch(1, 2, f.now.Add(time.Hour))

	_, _, err := f.svc.PlaceWager(context.Background(), user.ID, PlaceWagerInput{
		MatchID: match.ID,
		TeamID:  1,
		Amount:  decimal.Zero,
	})
	if !errors.Is(err, ErrAmountNotPositive) {
		t.Fatalf("err = %v, want ErrAmountNotPositive", err)
	}
}

func TestListUserWagersAttachesMatch(t *testing.T) {
	f := newBettingFixture()
	user := f.userRepo.addUser(decimal.NewFromInt(100), models.RoleBettor)
	match := f.matchRepo.addMatch(1, 2, f.now.Add(time.Hour))
	f.wagerRepo.addWager(user.ID, match.ID, 1, decimal.NewFromInt(10))
	f.wagerRepo.addWager(99, match.ID, 2, decimal.NewFromInt(5))

	wagers, err := f.svc.ListUserWagers(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListUserWagers: %v", err)
	}
	if len(wagers) != 1 {
		t.Fatalf("wagers = %d, want 1", len(wagers))
	}
	if wagers[0].Match == nil || wagers[0].Match.ID != match.ID {
		t.Errorf("wager match not attached: %+v", wagers[0].Match)
	}
}
