package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-teller/models"
)

func sampleAccount(id, username string) models.Account {
	return models.Account{
		ID:   id,
		Name: "Holder",
		Credential: models.PasswordCredential{
			Username: username,
			Password: "secret",
		},
		Role:    models.RoleUser,
		Balance: decimal.NewFromInt(10),
		Transactions: []models.Transaction{
			{ID: "t1", Kind: models.TxAccountCreated, Amount: decimal.Zero},
		},
	}
}

func TestAddAndGetReturnsDetachedCopy(t *testing.T) {
	s := New()
	s.AddAccount(sampleAccount("11111111111", "alice"))

	got, ok := s.GetAccountByID("11111111111")
	require.True(t, ok)

	// Mutating the copy must not leak into the store.
	got.Name = "Tampered"
	got.Transactions[0].Description = "tampered"
	got.Transactions = append(got.Transactions, models.Transaction{ID: "t2"})

	fresh, ok := s.GetAccountByID("11111111111")
	require.True(t, ok)
	assert.Equal(t, "Holder", fresh.Name)
	assert.Len(t, fresh.Transactions, 1)
	assert.Empty(t, fresh.Transactions[0].Description)
}

func TestGetMissing(t *testing.T) {
	s := New()
	_, ok := s.GetAccountByID("nope")
	assert.False(t, ok)
}

func TestDeleteAccount(t *testing.T) {
	s := New()
	s.AddAccount(sampleAccount("11111111111", "alice"))

	assert.True(t, s.DeleteAccount("11111111111"))
	assert.False(t, s.HasID("11111111111"))
	assert.False(t, s.DeleteAccount("11111111111"))
	assert.Equal(t, 0, s.Len())
}

func TestFindByLogin(t *testing.T) {
	s := New()
	s.AddAccount(sampleAccount("11111111111", "alice"))

	got, ok := s.FindByLogin("alice", "secret")
	require.True(t, ok)
	assert.Equal(t, "11111111111", got.ID)

	_, ok = s.FindByLogin("alice", "wrong")
	assert.False(t, ok)
	_, ok = s.FindByLogin("nobody", "secret")
	assert.False(t, ok)
	_, ok = s.FindByLogin("Alice", "secret")
	assert.False(t, ok, "identifier match is case-sensitive")
}

func TestHasLoginIdentifier(t *testing.T) {
	s := New()
	s.AddAccount(models.Account{
		ID: "11111111111",
		Credential: models.PasswordCredential{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret",
		},
	})

	assert.True(t, s.HasLoginIdentifier("alice"))
	assert.True(t, s.HasLoginIdentifier("alice@example.com"))
	assert.False(t, s.HasLoginIdentifier("bob"))
}

func TestRekey(t *testing.T) {
	s := New()
	s.AddAccount(sampleAccount("11111111111", "alice"))
	s.AddAccount(sampleAccount("22222222222", "bob"))

	assert.False(t, s.Rekey("11111111111", "22222222222"), "target key taken")
	assert.False(t, s.Rekey("33333333333", "44444444444"), "source missing")
	assert.True(t, s.Rekey("11111111111", "11111111111"), "no-op rekey")

	require.True(t, s.Rekey("11111111111", "55555555555"))
	assert.False(t, s.HasID("11111111111"))
	moved, ok := s.GetAccountByID("55555555555")
	require.True(t, ok)
	assert.Equal(t, "55555555555", moved.ID, "account ID field follows the key")
	assert.Len(t, moved.Transactions, 1)
}
