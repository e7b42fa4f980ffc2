// Package teller implements the ledger and authorization core: account
// identity, balance mutation, transaction recording, and role-scoped
// permissions. It is transport-free; the HTTP layer (or any other UI
// collaborator) drives it through the exported operation set.
package teller

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-teller/idgen"
	"go-teller/models"
	"go-teller/policy"
	"go-teller/store"
)

// Variant selects the credential scheme the core runs with. Both product
// skins share this one core.
type Variant string

const (
	// VariantATM authenticates with (11-digit account number, 4-digit PIN).
	VariantATM Variant = "atm"
	// VariantBank authenticates with (username or email, password).
	VariantBank Variant = "bank"
)

// Teller is the single-session core service. One authenticated session
// is active at a time; all operations are synchronous and deterministic.
type Teller struct {
	store   *store.Store
	newID   idgen.Func
	variant Variant
	log     *zap.Logger
	session *Session
}

// New builds a teller over the given store. gen may be nil to use the
// default random 11-digit generator; log may be nil to disable logging.
func New(st *store.Store, gen idgen.Func, variant Variant, log *zap.Logger) *Teller {
	if gen == nil {
		gen = idgen.Random
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Teller{store: st, newID: gen, variant: variant, log: log}
}

// Login matches the identifier and secret against the store and, on
// success, establishes a session holding a detached copy of the account.
// Unknown identifier and wrong secret produce the same ErrAuthFailed.
func (t *Teller) Login(identifier, secret string) (models.Account, error) {
	account, ok := t.store.FindByLogin(identifier, secret)
	if !ok {
		t.log.Info("login failed", zap.String("identifier", identifier))
		return models.Account{}, ErrAuthFailed
	}
	t.session = &Session{Account: account, storeID: account.ID}
	t.log.Info("login", zap.String("account", account.ID), zap.String("role", string(account.Role)))
	return account.Clone(), nil
}

// Signup creates a regular-user account with zero balance and a single
// account_created seed transaction, then establishes a session for it.
// The chosen identifier must not already be logged in with by any
// account (case-sensitive exact match); a failed signup mutates nothing.
func (t *Teller) Signup(name, identifier, secret string) (models.Account, error) {
	account, err := t.buildAccount(name, identifier, secret)
	if err != nil {
		return models.Account{}, err
	}
	account.Transactions = []models.Transaction{newTransaction(
		models.TxAccountCreated, decimal.Zero, "", "Account created successfully",
	)}

	t.store.AddAccount(account)
	t.session = &Session{Account: account.Clone(), storeID: account.ID}
	t.log.Info("signup", zap.String("account", account.ID))
	return account.Clone(), nil
}

// Logout writes the session's name, balance, and transactions back onto
// the canonical store entry, re-keys the store if the account ID was
// self-edited, and clears the session. If the account was deleted while
// the session was live there is nothing to flush.
func (t *Teller) Logout() {
	sess := t.session
	t.session = nil
	if sess == nil {
		return
	}

	entry, ok := t.store.GetAccountByID(sess.storeID)
	if !ok {
		t.log.Info("logout: account gone, nothing to flush", zap.String("account", sess.storeID))
		return
	}
	entry.Name = sess.Account.Name
	entry.Balance = sess.Account.Balance
	entry.Transactions = sess.Account.Transactions
	t.store.UpdateAccount(entry)

	if sess.Account.ID != sess.storeID {
		if t.store.Rekey(sess.storeID, sess.Account.ID) {
			t.syncCredentialAccountNumber(sess.Account.ID)
			t.log.Info("logout: account re-keyed",
				zap.String("from", sess.storeID), zap.String("to", sess.Account.ID))
		} else {
			t.log.Warn("logout: edited identifier already taken, keeping old one",
				zap.String("kept", sess.storeID), zap.String("wanted", sess.Account.ID))
		}
	}
	t.log.Info("logout", zap.String("account", sess.storeID))
}

// Deposit adds amount to the target account (the session's own account
// when targetID is empty) and appends a deposit transaction. The amount
// must be positive; the collaborator validates first but the ledger
// rejects bad input regardless. When the actor is not the owner, the
// record carries the actor's name.
func (t *Teller) Deposit(amount decimal.Decimal, targetID string) error {
	sess, err := t.requireSession()
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	storeID, own := t.resolveTarget(sess, targetID)
	account, ok := t.store.GetAccountByID(storeID)
	if !ok {
		return ErrNotFound
	}
	if !policy.Allows(sess.Account.Role, policy.Deposit, own, account.Role) {
		return ErrPolicyViolation
	}

	account.Balance = account.Balance.Add(amount)
	tx := newTransaction(models.TxDeposit, amount, "", "Deposit")
	if !own {
		tx.PerformedBy = sess.Account.Name
		tx.Description = fmt.Sprintf("Deposit by %s", sess.Account.Name)
	}
	account.Transactions = append(account.Transactions, tx)
	t.store.UpdateAccount(account)

	if own {
		sess.Account.Balance = account.Balance
		sess.Account.Transactions = append(sess.Account.Transactions, tx)
	}
	t.log.Info("deposit",
		zap.String("account", storeID),
		zap.String("amount", amount.StringFixed(2)),
		zap.Bool("own", own))
	return nil
}

// Withdraw removes amount from the target account. It fails with
// ErrInsufficientFunds when amount exceeds the balance, leaving the
// balance untouched and appending no transaction. A balance never goes
// negative through this path.
func (t *Teller) Withdraw(amount decimal.Decimal, targetID string) error {
	sess, err := t.requireSession()
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	storeID, own := t.resolveTarget(sess, targetID)
	account, ok := t.store.GetAccountByID(storeID)
	if !ok {
		return ErrNotFound
	}
	if !policy.Allows(sess.Account.Role, policy.Withdraw, own, account.Role) {
		return ErrPolicyViolation
	}
	if amount.GreaterThan(account.Balance) {
		return ErrInsufficientFunds
	}

	account.Balance = account.Balance.Sub(amount)
	tx := newTransaction(models.TxWithdraw, amount, "", "Withdrawal")
	if !own {
		tx.PerformedBy = sess.Account.Name
		tx.Description = fmt.Sprintf("Withdrawal by %s", sess.Account.Name)
	}
	account.Transactions = append(account.Transactions, tx)
	t.store.UpdateAccount(account)

	if own {
		sess.Account.Balance = account.Balance
		sess.Account.Transactions = append(sess.Account.Transactions, tx)
	}
	t.log.Info("withdraw",
		zap.String("account", storeID),
		zap.String("amount", amount.StringFixed(2)),
		zap.Bool("own", own))
	return nil
}

// UpdateOwnProfile commits an edited display name and account number to
// the session copy. The store keeps the old key until Logout flushes the
// session. The new number must be well-formed and not held by another
// account.
func (t *Teller) UpdateOwnProfile(name, newID string) error {
	sess, err := t.requireSession()
	if err != nil {
		return err
	}
	if !models.ValidAccountNumber(newID) {
		return ErrInvalidIdentifier
	}
	if !sess.Owns(newID) && t.store.HasID(newID) {
		return ErrDuplicateIdentifier
	}
	sess.Account.Name = name
	sess.Account.ID = newID
	t.log.Info("profile updated", zap.String("account", sess.storeID))
	return nil
}

// CreateAccount is the manager's privileged creation: a regular-user
// account with an arbitrary non-negative initial balance. The seed
// transaction records the manager's name and the initial balance.
func (t *Teller) CreateAccount(name, identifier, secret string, initialBalance decimal.Decimal) (models.Account, error) {
	sess, err := t.requireSession()
	if err != nil {
		return models.Account{}, err
	}
	if !policy.Allows(sess.Account.Role, policy.CreateAccount, false, "") {
		return models.Account{}, ErrPolicyViolation
	}
	if initialBalance.IsNegative() {
		return models.Account{}, ErrInvalidAmount
	}

	account, err := t.buildAccount(name, identifier, secret)
	if err != nil {
		return models.Account{}, err
	}
	account.Balance = initialBalance
	account.Transactions = []models.Transaction{newTransaction(
		models.TxAccountCreated, initialBalance, sess.Account.Name,
		fmt.Sprintf("Account created by %s with initial balance $%s",
			sess.Account.Name, initialBalance.StringFixed(2)),
	)}

	t.store.AddAccount(account)
	t.log.Info("account created",
		zap.String("account", account.ID),
		zap.String("by", sess.Account.Name))
	return account.Clone(), nil
}

// UpdateAccount is the manager's direct edit: name and balance are set
// absolutely, not as deltas, and a zero-amount edited_by_manager record
// is appended. The balance-equals-sum-of-deltas property is therefore
// scoped to the stretch since the last administrative set.
func (t *Teller) UpdateAccount(targetID, name string, balance decimal.Decimal) error {
	sess, err := t.requireSession()
	if err != nil {
		return err
	}
	storeID, own := t.resolveTarget(sess, targetID)
	if !policy.Allows(sess.Account.Role, policy.EditAccount, own, "") {
		return ErrPolicyViolation
	}
	if balance.IsNegative() {
		return ErrInvalidAmount
	}
	account, ok := t.store.GetAccountByID(storeID)
	if !ok {
		return ErrNotFound
	}

	account.Name = name
	account.Balance = balance
	tx := newTransaction(models.TxEditedByManager, decimal.Zero, sess.Account.Name,
		fmt.Sprintf("Account edited by %s", sess.Account.Name))
	account.Transactions = append(account.Transactions, tx)
	t.store.UpdateAccount(account)

	if own {
		sess.Account.Name = account.Name
		sess.Account.Balance = account.Balance
		sess.Account.Transactions = append(sess.Account.Transactions, tx)
	}
	t.log.Info("account edited",
		zap.String("account", storeID),
		zap.String("by", sess.Account.Name))
	return nil
}

// DeleteAccount removes the target account and its transactions from the
// store entirely. Manager only. Deleting the session's own account is
// permitted; the eventual logout then has nothing to flush.
func (t *Teller) DeleteAccount(targetID string) error {
	sess, err := t.requireSession()
	if err != nil {
		return err
	}
	storeID, own := t.resolveTarget(sess, targetID)
	if !policy.Allows(sess.Account.Role, policy.DeleteAccount, own, "") {
		return ErrPolicyViolation
	}
	if !t.store.DeleteAccount(storeID) {
		return ErrNotFound
	}
	t.log.Info("account deleted",
		zap.String("account", storeID),
		zap.String("by", sess.Account.Name))
	return nil
}

// Accounts lists the accounts the session's role may view: regular users
// for a clerk, everything for a manager, only the own account otherwise.
func (t *Teller) Accounts() ([]models.Account, error) {
	sess, err := t.requireSession()
	if err != nil {
		return nil, err
	}
	var visible []models.Account
	for _, account := range t.store.ListAccounts() {
		own := sess.Owns(account.ID)
		if policy.Allows(sess.Account.Role, policy.ViewAccount, own, account.Role) {
			visible = append(visible, account)
		}
	}
	return visible, nil
}

// CurrentAccount returns the session's detached account copy.
func (t *Teller) CurrentAccount() (models.Account, error) {
	sess, err := t.requireSession()
	if err != nil {
		return models.Account{}, err
	}
	return sess.Account.Clone(), nil
}

// Transactions returns the session account's ledger, oldest first.
func (t *Teller) Transactions() ([]models.Transaction, error) {
	sess, err := t.requireSession()
	if err != nil {
		return nil, err
	}
	txs := make([]models.Transaction, len(sess.Account.Transactions))
	copy(txs, sess.Account.Transactions)
	return txs, nil
}

// Authenticated reports whether a session is active.
func (t *Teller) Authenticated() bool {
	return t.session != nil
}

func (t *Teller) requireSession() (*Session, error) {
	if t.session == nil {
		return nil, ErrNoSession
	}
	return t.session, nil
}

// resolveTarget maps an operation target to its store key. An empty
// target means the session's own account, whose store key may differ
// from its edited ID until logout.
func (t *Teller) resolveTarget(sess *Session, targetID string) (storeID string, own bool) {
	if targetID == "" || sess.Owns(targetID) {
		return sess.storeID, true
	}
	return targetID, false
}

// buildAccount validates the credential material for the active variant,
// allocates a fresh account ID, and assembles a regular-user account
// with zero balance and no transactions.
func (t *Teller) buildAccount(name, identifier, secret string) (models.Account, error) {
	id := t.newID(t.store.HasID)

	var credential models.Credential
	switch t.variant {
	case VariantATM:
		// The account number doubles as the login identifier; any
		// supplied identifier material is ignored.
		if !models.ValidPIN(secret) {
			return models.Account{}, ErrInvalidSecret
		}
		credential = models.PinCredential{AccountNumber: id, PIN: secret}
	default:
		if identifier == "" {
			return models.Account{}, ErrInvalidIdentifier
		}
		if t.store.HasLoginIdentifier(identifier) {
			return models.Account{}, ErrDuplicateIdentifier
		}
		cred := models.PasswordCredential{Password: secret}
		if strings.Contains(identifier, "@") {
			cred.Email = identifier
		} else {
			cred.Username = identifier
		}
		credential = cred
	}

	return models.Account{
		ID:         id,
		Name:       name,
		Credential: credential,
		Role:       models.RoleUser,
		Balance:    decimal.Zero,
	}, nil
}

// syncCredentialAccountNumber keeps a PIN credential's account number in
// step with a re-keyed account, so the next login still works.
func (t *Teller) syncCredentialAccountNumber(id string) {
	account, ok := t.store.GetAccountByID(id)
	if !ok {
		return
	}
	if cred, isPin := account.Credential.(models.PinCredential); isPin {
		cred.AccountNumber = id
		account.Credential = cred
		t.store.UpdateAccount(account)
	}
}

func newTransaction(kind models.TransactionKind, amount decimal.Decimal, performedBy, description string) models.Transaction {
	return models.Transaction{
		ID:          uuid.New().String(),
		Kind:        kind,
		Amount:      amount,
		Date:        time.Now(),
		PerformedBy: performedBy,
		Description: description,
	}
}
