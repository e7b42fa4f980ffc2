package store

import (
	"sync"

	"go-teller/models"
)

// Store holds all accounts in memory and is the single source of truth.
// State is volatile for the process lifetime; there is no persistence.
//
// The mutex serializes access so the store stays consistent even though
// the core assumes a single active session. A real multi-client port
// would additionally need per-account mutual exclusion (or optimistic
// versioning) around read-check-write balance updates; the coarse lock
// here is not a substitute for that.
type Store struct {
	accounts map[string]models.Account
	mutex    sync.RWMutex
}

// New returns an empty store.
func New() *Store {
	return &Store{accounts: make(map[string]models.Account)}
}

// AddAccount adds an account to the store.
func (s *Store) AddAccount(account models.Account) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.accounts[account.ID] = account.Clone()
}

// GetAccountByID retrieves a detached copy of an account by ID.
func (s *Store) GetAccountByID(id string) (models.Account, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	account, exists := s.accounts[id]
	if !exists {
		return models.Account{}, false
	}
	return account.Clone(), true
}

// UpdateAccount overwrites the stored entry for account.ID.
func (s *Store) UpdateAccount(account models.Account) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.accounts[account.ID] = account.Clone()
}

// DeleteAccount removes an account and its transactions entirely. There
// is no tombstone. Reports whether the account existed.
func (s *Store) DeleteAccount(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, exists := s.accounts[id]
	delete(s.accounts, id)
	return exists
}

// ListAccounts returns detached copies of every account.
func (s *Store) ListAccounts() []models.Account {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	accounts := make([]models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account.Clone())
	}
	return accounts
}

// HasID reports whether an account with the given ID exists.
func (s *Store) HasID(id string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	_, exists := s.accounts[id]
	return exists
}

// HasLoginIdentifier reports whether any account can already be logged
// in with the given identifier. Exact, case-sensitive match.
func (s *Store) HasLoginIdentifier(identifier string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, account := range s.accounts {
		for _, id := range account.Credential.LoginIdentifiers() {
			if id == identifier {
				return true
			}
		}
	}
	return false
}

// FindByLogin returns the account whose credential matches the given
// identifier and secret. The caller cannot tell an unknown identifier
// from a wrong secret; both simply fail to match.
func (s *Store) FindByLogin(identifier, secret string) (models.Account, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, account := range s.accounts {
		if account.Credential.Matches(identifier, secret) {
			return account.Clone(), true
		}
	}
	return models.Account{}, false
}

// Rekey moves an account from oldID to newID, updating the account's own
// ID field. Fails if oldID is missing or newID is already taken.
func (s *Store) Rekey(oldID, newID string) bool {
	if oldID == newID {
		return true
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	account, exists := s.accounts[oldID]
	if !exists {
		return false
	}
	if _, taken := s.accounts[newID]; taken {
		return false
	}
	delete(s.accounts, oldID)
	account.ID = newID
	s.accounts[newID] = account
	return true
}

// Len returns the number of accounts.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.accounts)
}
