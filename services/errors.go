package services

import "errors"

// Shared sentinel errors, mapped to HTTP statuses in the handlers package.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrInvalidRole         = errors.New("invalid role")
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrAmountNotPositive   = errors.New("amount must be positive")
	ErrSameTeams           = errors.New("local and visitor teams must differ")
	ErrMatchAlreadyStarted = errors.New("match has already started")
	ErrTeamNotInMatch      = errors.New("team does not play in this match")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrNotEnoughTeams      = errors.New("not enough teams to generate fixtures")

	// Conflicts
	ErrUserEmailConflict   = errors.New("email address is already in use")
	ErrTeamNameConflict    = errors.New("team name is already in use")
	ErrShirtNumberConflict = errors.New("shirt number is already taken on this team")
	ErrTeamHasMatches      = errors.New("team has associated matches and cannot be deleted")
	ErrMatchHasWagers      = errors.New("match has associated wagers and cannot be deleted")
	ErrMatchResolved       = errors.New("match is already resolved")
	ErrProfileExists       = errors.New("profile already exists for this user")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors; they carry more context than the
	// generic ErrNotFound without changing the HTTP mapping.
	ErrUserNotFound    = errors.New("user not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrRefereeNotFound = errors.New("referee not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrWagerNotFound   = errors.New("wager not found")
)
