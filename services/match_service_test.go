package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dosada05/betting-league/models"
)

func newMatchFixture() (MatchService, *fakeTeamRepo, *fakeRefereeRepo, *fakeMatchRepo, *fakeWagerRepo) {
	teamRepo := newFakeTeamRepo()
	refereeRepo := newFakeRefereeRepo()
	matchRepo := newFakeMatchRepo()
	wagerRepo := newFakeWagerRepo()
	svc := NewMatchService(matchRepo, teamRepo, refereeRepo, wagerRepo)
	return svc, teamRepo, refereeRepo, matchRepo, wagerRepo
}

func TestCreateMatch(t *testing.T) {
	svc, teamRepo, refereeRepo, _, _ := newMatchFixture()
	teamRepo.addTeam("Alpha")
	teamRepo.addTeam("Bravo")
	referee := refereeRepo.addReferee()

	kickoff := time.Now().Add(48 * time.Hour)
	match, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		LocalID:   1,
		VisitorID: 2,
		RefereeID: &referee.ID,
		Kickoff:   kickoff,
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if match.Resolved {
		t.Error("new match already resolved")
	}
	if match.RefereeID == nil || *match.RefereeID != referee.ID {
		t.Errorf("referee = %v, want %d", match.RefereeID, referee.ID)
	}
}

func TestCreateMatchRejectsSameTeams(t *testing.T) {
	svc, teamRepo, _, _, _ := newMatchFixture()
	teamRepo.addTeam("Alpha")

	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		LocalID:   1,
		VisitorID: 1,
		Kickoff:   time.Now().Add(time.Hour),
	})
	if !errors.Is(err, ErrSameTeams) {
		t.Fatalf("err = %v, want ErrSameTeams", err)
	}
}

func TestCreateMatchUnknownReferences(t *testing.T) {
	svc, teamRepo, _, _, _ := newMatchFixture()
	teamRepo.addTeam("Alpha")

	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		LocalID:   1,
		VisitorID: 9,
		Kickoff:   time.Now().Add(time.Hour),
	})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("unknown team err = %v, want ErrTeamNotFound", err)
	}

	missingReferee := 7
	_, err = svc.CreateMatch(context.Background(), CreateMatchInput{
		LocalID:   1,
		VisitorID: 9,
		RefereeID: &missingReferee,
		Kickoff:   time.Now().Add(time.Hour),
	})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("err = %v, want team check to fire first", err)
	}
}

func TestUpdateKickoffRejectsResolvedMatch(t *testing.T) {
	svc, _, _, matchRepo, _ := newMatchFixture()
	resolved := matchRepo.addResolvedMatch(1, 2, 1, 0)

	_, err := svc.UpdateKickoff(context.Background(), resolved.ID, time.Now().Add(time.Hour))
	if !errors.Is(err, ErrMatchResolved) {
		t.Fatalf("err = %v, want ErrMatchResolved", err)
	}

	scheduled := matchRepo.addMatch(1, 2, time.Now().Add(time.Hour))
	newKickoff := time.Now().Add(72 * time.Hour)
	updated, err := svc.UpdateKickoff(context.Background(), scheduled.ID, newKickoff)
	if err != nil {
		t.Fatalf("UpdateKickoff: %v", err)
	}
	if !updated.Kickoff.Equal(newKickoff) {
		t.Errorf("kickoff = %v, want %v", updated.Kickoff, newKickoff)
	}
}

func TestDeleteMatchRestrictedByWagers(t *testing.T) {
	svc, _, _, matchRepo, wagerRepo := newMatchFixture()
	match := matchRepo.addMatch(1, 2, time.Now().Add(time.Hour))
	wagerRepo.addWager(5, match.ID, 1, decimal.NewFromInt(10))

	if err := svc.DeleteMatch(context.Background(), match.ID); !errors.Is(err, ErrMatchHasWagers) {
		t.Fatalf("err = %v, want ErrMatchHasWagers", err)
	}
	if _, err := matchRepo.GetByID(context.Background(), match.ID); err != nil {
		t.Fatal("match was deleted despite existing wagers")
	}

	clean := matchRepo.addMatch(1, 2, time.Now().Add(time.Hour))
	if err := svc.DeleteMatch(context.Background(), clean.ID); err != nil {
		t.Fatalf("DeleteMatch without wagers: %v", err)
	}
}

func TestGenerateRoundRobin(t *testing.T) {
	svc, teamRepo, _, matchRepo, _ := newMatchFixture()
	for _, name := range []string{"Alpha", "Bravo", "Charlie", "Delta"} {
		teamRepo.addTeam(name)
	}

	start := time.Date(2026, 4, 1, 15, 0, 0, 0, time.UTC)
	interval := 24 * time.Hour
	matches, err := svc.GenerateRoundRobin(context.Background(), start, interval)
	if err != nil {
		t.Fatalf("GenerateRoundRobin: %v", err)
	}

	// Four teams pair off into C(4,2) fixtures.
	if len(matches) != 6 {
		t.Fatalf("fixtures = %d, want 6", len(matches))
	}

	seen := make(map[[2]int]bool)
	for i, match := range matches {
		if match.LocalTeamID == match.VisitorTeamID {
			t.Errorf("fixture %d pits team %d against itself", i, match.LocalTeamID)
		}
		key := [2]int{match.LocalTeamID, match.VisitorTeamID}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			t.Errorf("pair %v scheduled twice", key)
		}
		seen[key] = true

		want := start.Add(time.Duration(i) * interval)
		if !match.Kickoff.Equal(want) {
			t.Errorf("fixture %d kickoff = %v, want %v", i, match.Kickoff, want)
		}
	}

	if stored, _ := matchRepo.List(context.Background(), models.MatchFilter{}); len(stored) != 6 {
		t.Errorf("persisted fixtures = %d, want 6", len(stored))
	}
}

func TestGenerateRoundRobinNeedsTwoTeams(t *testing.T) {
	svc, teamRepo, _, _, _ := newMatchFixture()
	teamRepo.addTeam("Alpha")

	_, err := svc.GenerateRoundRobin(context.Background(), time.Now(), time.Hour)
	if !errors.Is(err, ErrNotEnoughTeams) {
		t.Fatalf("err = %v, want ErrNotEnoughTeams", err)
	}
}
