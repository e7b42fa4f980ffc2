package models

import "regexp"

// Credential is how an account holder proves who they are. The two
// product variants use different shapes, so credentials are a tagged
// variant rather than optional fields on Account.
type Credential interface {
	// Matches reports whether the given login identifier and secret
	// exactly match this credential. Comparison is case-sensitive.
	Matches(identifier, secret string) bool
	// LoginIdentifiers returns every identifier this credential can be
	// logged in with, for duplicate checks at signup.
	LoginIdentifiers() []string
}

// PasswordCredential is the bank-variant credential: login by username
// or email, secret is a plaintext password. Plaintext comparison is the
// simulated system's behavior, not an oversight to fix.
type PasswordCredential struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c PasswordCredential) Matches(identifier, secret string) bool {
	if identifier == "" {
		return false
	}
	if identifier != c.Username && identifier != c.Email {
		return false
	}
	return secret == c.Password
}

func (c PasswordCredential) LoginIdentifiers() []string {
	var ids []string
	if c.Username != "" {
		ids = append(ids, c.Username)
	}
	if c.Email != "" {
		ids = append(ids, c.Email)
	}
	return ids
}

// PinCredential is the ATM-variant credential: login by 11-digit account
// number, secret is a 4-digit PIN.
type PinCredential struct {
	AccountNumber string `json:"accountNumber"`
	PIN           string `json:"pin"`
}

func (c PinCredential) Matches(identifier, secret string) bool {
	return identifier != "" && identifier == c.AccountNumber && secret == c.PIN
}

func (c PinCredential) LoginIdentifiers() []string {
	return []string{c.AccountNumber}
}

var (
	pinRegex           = regexp.MustCompile(`^\d{4}$`)
	accountNumberRegex = regexp.MustCompile(`^\d{11}$`)
)

// ValidPIN reports whether s is exactly 4 digits.
func ValidPIN(s string) bool {
	return pinRegex.MatchString(s)
}

// ValidAccountNumber reports whether s is exactly 11 digits.
func ValidAccountNumber(s string) bool {
	return accountNumberRegex.MatchString(s)
}
