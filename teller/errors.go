package teller

import "errors"

// Domain errors. Every operation either succeeds or returns one of
// these; there is no fatal error class. The HTTP layer maps them to
// status codes.
var (
	// ErrAuthFailed covers both an unknown identifier and a wrong
	// secret. Keeping the two indistinguishable prevents account
	// enumeration.
	ErrAuthFailed = errors.New("invalid credentials")

	// ErrDuplicateIdentifier means a signup or account-creation chose a
	// login identifier or account number that is already taken.
	ErrDuplicateIdentifier = errors.New("identifier already in use")

	// ErrInsufficientFunds means a withdrawal exceeded the balance. The
	// account is left untouched.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrPolicyViolation means the actor's role does not permit the
	// requested operation on the target account.
	ErrPolicyViolation = errors.New("operation not permitted for role")

	// ErrNotFound means the target account does not exist.
	ErrNotFound = errors.New("account not found")

	// ErrInvalidAmount means a non-positive deposit/withdrawal amount
	// or a negative balance set.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidIdentifier means a malformed login identifier or
	// account number.
	ErrInvalidIdentifier = errors.New("malformed identifier")

	// ErrInvalidSecret means a malformed secret, e.g. a PIN that is not
	// exactly 4 digits.
	ErrInvalidSecret = errors.New("malformed secret")

	// ErrNoSession means an operation that needs an authenticated
	// session was called without one.
	ErrNoSession = errors.New("no authenticated session")
)
