package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordCredentialMatches(t *testing.T) {
	cred := PasswordCredential{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pass1",
	}

	assert.True(t, cred.Matches("alice", "pass1"))
	assert.True(t, cred.Matches("alice@example.com", "pass1"))
	assert.False(t, cred.Matches("alice", "wrong"))
	assert.False(t, cred.Matches("Alice", "pass1"), "case-sensitive")
	assert.False(t, cred.Matches("", ""))
	assert.ElementsMatch(t, []string{"alice", "alice@example.com"}, cred.LoginIdentifiers())
}

func TestPasswordCredentialPartialIdentity(t *testing.T) {
	cred := PasswordCredential{Email: "clerk@clerk.com", Password: "pw"}
	assert.True(t, cred.Matches("clerk@clerk.com", "pw"))
	assert.False(t, cred.Matches("", "pw"), "empty username must not match a username-less credential")
	assert.Equal(t, []string{"clerk@clerk.com"}, cred.LoginIdentifiers())
}

func TestPinCredentialMatches(t *testing.T) {
	cred := PinCredential{AccountNumber: "12345678901", PIN: "1234"}

	assert.True(t, cred.Matches("12345678901", "1234"))
	assert.False(t, cred.Matches("12345678901", "4321"))
	assert.False(t, cred.Matches("10987654321", "1234"))
	assert.Equal(t, []string{"12345678901"}, cred.LoginIdentifiers())
}

func TestValidPIN(t *testing.T) {
	assert.True(t, ValidPIN("0000"))
	assert.True(t, ValidPIN("1234"))
	assert.False(t, ValidPIN("123"))
	assert.False(t, ValidPIN("12345"))
	assert.False(t, ValidPIN("12a4"))
	assert.False(t, ValidPIN(""))
}

func TestValidAccountNumber(t *testing.T) {
	assert.True(t, ValidAccountNumber("12345678901"))
	assert.False(t, ValidAccountNumber("1234567890"))
	assert.False(t, ValidAccountNumber("123456789012"))
	assert.False(t, ValidAccountNumber("1234567890a"))
}

func TestAccountCloneDetachesLedger(t *testing.T) {
	a := Account{
		ID:           "12345678901",
		Name:         "Alice",
		Transactions: []Transaction{{ID: "t1", Kind: TxAccountCreated}},
	}
	cp := a.Clone()
	cp.Transactions[0].Description = "tampered"
	cp.Transactions = append(cp.Transactions, Transaction{ID: "t2"})

	assert.Empty(t, a.Transactions[0].Description)
	assert.Len(t, a.Transactions, 1)
}
