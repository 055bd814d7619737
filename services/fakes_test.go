package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/repositories"
)

// In-memory repository fakes. The services run their transactional paths
// with a nil *sql.DB, so every method receiving an SQLExecutor ignores it.

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (r *fakeUserRepo) addUser(balance decimal.Decimal, role models.UserRole) *models.User {
	user := &models.User{
		ID:      r.nextID,
		Email:   fmt.Sprintf("user%d@example.com", r.nextID),
		Role:    role,
		Balance: balance,
	}
	r.users[user.ID] = user
	r.nextID++
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, exec repositories.SQLExecutor, id int, role models.UserRole) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Role = role
	return nil
}

func (r *fakeUserRepo) GetBalance(ctx context.Context, id int) (decimal.Decimal, error) {
	user, ok := r.users[id]
	if !ok {
		return decimal.Zero, repositories.ErrUserNotFound
	}
	return user.Balance, nil
}

func (r *fakeUserRepo) CreditBalance(ctx context.Context, exec repositories.SQLExecutor, id int, amount decimal.Decimal) (decimal.Decimal, error) {
	user, ok := r.users[id]
	if !ok {
		return decimal.Zero, repositories.ErrUserNotFound
	}
	user.Balance = user.Balance.Add(amount)
	return user.Balance, nil
}

func (r *fakeUserRepo) DebitBalance(ctx context.Context, exec repositories.SQLExecutor, id int, amount decimal.Decimal) (decimal.Decimal, error) {
	user, ok := r.users[id]
	if !ok {
		return decimal.Zero, repositories.ErrUserNotFound
	}
	if user.Balance.LessThan(amount) {
		return decimal.Zero, repositories.ErrInsufficientBalance
	}
	user.Balance = user.Balance.Sub(amount)
	return user.Balance, nil
}

type fakeTeamRepo struct {
	teams  map[int]*models.Team
	nextID int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]*models.Team), nextID: 1}
}

func (r *fakeTeamRepo) addTeam(name string) *models.Team {
	team := &models.Team{ID: r.nextID, Name: name}
	r.teams[team.ID] = team
	r.nextID++
	return team
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	for _, existing := range r.teams {
		if strings.EqualFold(existing.Name, team.Name) {
			return repositories.ErrTeamNameConflict
		}
	}
	team.ID = r.nextID
	r.nextID++
	team.CreatedAt = time.Now()
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) List(ctx context.Context) ([]*models.Team, error) {
	ids := make([]int, 0, len(r.teams))
	for id := range r.teams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	teams := make([]*models.Team, 0, len(ids))
	for _, id := range ids {
		copied := *r.teams[id]
		teams = append(teams, &copied)
	}
	return teams, nil
}

func (r *fakeTeamRepo) Rename(ctx context.Context, id int, name string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	for _, existing := range r.teams {
		if existing.ID != id && strings.EqualFold(existing.Name, name) {
			return repositories.ErrTeamNameConflict
		}
	}
	team.Name = name
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.CrestKey = crestKey
	return nil
}

type fakePlayerRepo struct {
	players map[int]*models.Player
	nextID  int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]*models.Player), nextID: 1}
}

func (r *fakePlayerRepo) addPlayer(teamID *int) *models.Player {
	player := &models.Player{ID: r.nextID, UserID: r.nextID, Level: 1, TeamID: teamID}
	r.players[player.ID] = player
	r.nextID++
	return player
}

func (r *fakePlayerRepo) Create(ctx context.Context, player *models.Player) error {
	for _, existing := range r.players {
		if existing.UserID == player.UserID {
			return repositories.ErrPlayerAlreadyExists
		}
	}
	player.ID = r.nextID
	r.nextID++
	r.players[player.ID] = player
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (r *fakePlayerRepo) List(ctx context.Context) ([]*models.Player, error) {
	ids := make([]int, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	players := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		copied := *r.players[id]
		players = append(players, &copied)
	}
	return players, nil
}

func (r *fakePlayerRepo) ListByTeamID(ctx context.Context, teamID int) ([]*models.Player, error) {
	all, _ := r.List(ctx)
	players := make([]*models.Player, 0)
	for _, player := range all {
		if player.TeamID != nil && *player.TeamID == teamID {
			players = append(players, player)
		}
	}
	return players, nil
}

func (r *fakePlayerRepo) CountByTeamID(ctx context.Context, teamID int) (int, error) {
	players, _ := r.ListByTeamID(ctx, teamID)
	return len(players), nil
}

func (r *fakePlayerRepo) AssignTeam(ctx context.Context, id int, teamID int, shirtNumber *int, position *string) error {
	player, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	if shirtNumber != nil {
		for _, existing := range r.players {
			if existing.ID != id && existing.TeamID != nil && *existing.TeamID == teamID &&
				existing.ShirtNumber != nil && *existing.ShirtNumber == *shirtNumber {
				return repositories.ErrShirtNumberConflict
			}
		}
	}
	player.TeamID = &teamID
	player.ShirtNumber = shirtNumber
	player.Position = position
	return nil
}

type fakeRefereeRepo struct {
	referees map[int]*models.Referee
	nextID   int
}

func newFakeRefereeRepo() *fakeRefereeRepo {
	return &fakeRefereeRepo{referees: make(map[int]*models.Referee), nextID: 1}
}

func (r *fakeRefereeRepo) addReferee() *models.Referee {
	referee := &models.Referee{ID: r.nextID, UserID: r.nextID}
	r.referees[referee.ID] = referee
	r.nextID++
	return referee
}

func (r *fakeRefereeRepo) Create(ctx context.Context, referee *models.Referee) error {
	for _, existing := range r.referees {
		if existing.UserID == referee.UserID {
			return repositories.ErrRefereeAlreadyExists
		}
	}
	referee.ID = r.nextID
	r.nextID++
	r.referees[referee.ID] = referee
	return nil
}

func (r *fakeRefereeRepo) GetByID(ctx context.Context, id int) (*models.Referee, error) {
	referee, ok := r.referees[id]
	if !ok {
		return nil, repositories.ErrRefereeNotFound
	}
	copied := *referee
	return &copied, nil
}

func (r *fakeRefereeRepo) List(ctx context.Context) ([]*models.Referee, error) {
	ids := make([]int, 0, len(r.referees))
	for id := range r.referees {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	referees := make([]*models.Referee, 0, len(ids))
	for _, id := range ids {
		copied := *r.referees[id]
		referees = append(referees, &copied)
	}
	return referees, nil
}

type fakeMatchRepo struct {
	matches map[int]*models.Match
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 1}
}

func (r *fakeMatchRepo) addMatch(localID, visitorID int, kickoff time.Time) *models.Match {
	match := &models.Match{
		ID:            r.nextID,
		LocalTeamID:   localID,
		VisitorTeamID: visitorID,
		Kickoff:       kickoff,
	}
	r.matches[match.ID] = match
	r.nextID++
	return match
}

func (r *fakeMatchRepo) addResolvedMatch(localID, visitorID, goalsLocal, goalsVisitor int) *models.Match {
	match := r.addMatch(localID, visitorID, time.Now().Add(-time.Hour))
	match.GoalsLocal = &goalsLocal
	match.GoalsVisitor = &goalsVisitor
	switch {
	case goalsLocal > goalsVisitor:
		match.WinnerTeamID = &match.LocalTeamID
	case goalsVisitor > goalsLocal:
		match.WinnerTeamID = &match.VisitorTeamID
	}
	match.Resolved = true
	match.Settled = true
	return match
}

func (r *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	match.ID = r.nextID
	r.nextID++
	match.CreatedAt = time.Now()
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeMatchRepo) List(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error) {
	ids := make([]int, 0, len(r.matches))
	for id := range r.matches {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	matches := make([]*models.Match, 0)
	for _, id := range ids {
		match := r.matches[id]
		if filter.TeamID != nil && !match.HasTeam(*filter.TeamID) {
			continue
		}
		if filter.RefereeID != nil && (match.RefereeID == nil || *match.RefereeID != *filter.RefereeID) {
			continue
		}
		if filter.From != nil && match.Kickoff.Before(*filter.From) {
			continue
		}
		if filter.To != nil && match.Kickoff.After(*filter.To) {
			continue
		}
		if filter.Resolved != nil && match.Resolved != *filter.Resolved {
			continue
		}
		copied := *match
		matches = append(matches, &copied)
	}
	return matches, nil
}

func (r *fakeMatchRepo) ListResolved(ctx context.Context) ([]*models.Match, error) {
	resolved := true
	return r.List(ctx, models.MatchFilter{Resolved: &resolved})
}

func (r *fakeMatchRepo) UpdateKickoff(ctx context.Context, id int, kickoff time.Time) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Kickoff = kickoff
	return nil
}

func (r *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) CountByTeam(ctx context.Context, teamID int) (int, error) {
	count := 0
	for _, match := range r.matches {
		if match.HasTeam(teamID) {
			count++
		}
	}
	return count, nil
}

func (r *fakeMatchRepo) SetResult(ctx context.Context, exec repositories.SQLExecutor, id int, goalsLocal, goalsVisitor int, winnerTeamID *int) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if match.Resolved {
		return repositories.ErrMatchAlreadyResolved
	}
	match.GoalsLocal = &goalsLocal
	match.GoalsVisitor = &goalsVisitor
	match.WinnerTeamID = winnerTeamID
	match.Resolved = true
	return nil
}

func (r *fakeMatchRepo) MarkSettled(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Settled = true
	return nil
}

type fakeWagerRepo struct {
	wagers map[int]*models.Wager
	nextID int
}

func newFakeWagerRepo() *fakeWagerRepo {
	return &fakeWagerRepo{wagers: make(map[int]*models.Wager), nextID: 1}
}

func (r *fakeWagerRepo) addWager(userID, matchID, teamID int, amount decimal.Decimal) *models.Wager {
	wager := &models.Wager{
		ID:      r.nextID,
		UserID:  userID,
		MatchID: matchID,
		TeamID:  teamID,
		Amount:  amount,
	}
	r.wagers[wager.ID] = wager
	r.nextID++
	return wager
}

func (r *fakeWagerRepo) Create(ctx context.Context, exec repositories.SQLExecutor, wager *models.Wager) error {
	wager.ID = r.nextID
	r.nextID++
	wager.PlacedAt = time.Now()
	r.wagers[wager.ID] = wager
	return nil
}

func (r *fakeWagerRepo) GetByID(ctx context.Context, id int) (*models.Wager, error) {
	wager, ok := r.wagers[id]
	if !ok {
		return nil, repositories.ErrWagerNotFound
	}
	copied := *wager
	return &copied, nil
}

func (r *fakeWagerRepo) listSorted() []*models.Wager {
	ids := make([]int, 0, len(r.wagers))
	for id := range r.wagers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	wagers := make([]*models.Wager, 0, len(ids))
	for _, id := range ids {
		copied := *r.wagers[id]
		wagers = append(wagers, &copied)
	}
	return wagers
}

func (r *fakeWagerRepo) ListByUser(ctx context.Context, userID int) ([]*models.Wager, error) {
	wagers := make([]*models.Wager, 0)
	for _, wager := range r.listSorted() {
		if wager.UserID == userID {
			wagers = append(wagers, wager)
		}
	}
	return wagers, nil
}

func (r *fakeWagerRepo) ListByMatchForUpdate(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]*models.Wager, error) {
	wagers := make([]*models.Wager, 0)
	for _, wager := range r.listSorted() {
		if wager.MatchID == matchID {
			wagers = append(wagers, wager)
		}
	}
	return wagers, nil
}

func (r *fakeWagerRepo) CountByMatch(ctx context.Context, matchID int) (int, error) {
	count := 0
	for _, wager := range r.wagers {
		if wager.MatchID == matchID {
			count++
		}
	}
	return count, nil
}

func (r *fakeWagerRepo) SetOutcome(ctx context.Context, exec repositories.SQLExecutor, id int, won bool) error {
	wager, ok := r.wagers[id]
	if !ok {
		return repositories.ErrWagerNotFound
	}
	wager.Won = won
	wager.Settled = true
	return nil
}

func (r *fakeWagerRepo) SumWonAmountByTeam(ctx context.Context, teamID int) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, wager := range r.wagers {
		if wager.TeamID == teamID && wager.Settled && wager.Won {
			sum = sum.Add(wager.Amount)
		}
	}
	return sum, nil
}

type fakeRechargeRepo struct {
	recharges []*models.Recharge
	nextID    int
}

func newFakeRechargeRepo() *fakeRechargeRepo {
	return &fakeRechargeRepo{nextID: 1}
}

func (r *fakeRechargeRepo) Create(ctx context.Context, exec repositories.SQLExecutor, recharge *models.Recharge) error {
	recharge.ID = r.nextID
	r.nextID++
	recharge.CreatedAt = time.Now()
	r.recharges = append(r.recharges, recharge)
	return nil
}

func (r *fakeRechargeRepo) ListByUser(ctx context.Context, userID int) ([]*models.Recharge, error) {
	recharges := make([]*models.Recharge, 0)
	for _, recharge := range r.recharges {
		if recharge.UserID == userID {
			copied := *recharge
			recharges = append(recharges, &copied)
		}
	}
	return recharges, nil
}

type fakeRoleChangeRepo struct {
	changes []*models.RoleChange
	nextID  int
}

func newFakeRoleChangeRepo() *fakeRoleChangeRepo {
	return &fakeRoleChangeRepo{nextID: 1}
}

func (r *fakeRoleChangeRepo) Create(ctx context.Context, exec repositories.SQLExecutor, change *models.RoleChange) error {
	change.ID = r.nextID
	r.nextID++
	change.CreatedAt = time.Now()
	r.changes = append(r.changes, change)
	return nil
}

func (r *fakeRoleChangeRepo) List(ctx context.Context) ([]*models.RoleChange, error) {
	changes := make([]*models.RoleChange, len(r.changes))
	for i, change := range r.changes {
		copied := *change
		changes[i] = &copied
	}
	return changes, nil
}
