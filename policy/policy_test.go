package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-teller/models"
)

func TestCapabilityMatrix(t *testing.T) {
	cases := []struct {
		name       string
		actor      models.Role
		action     Action
		own        bool
		targetRole models.Role
		want       bool
	}{
		{"user views own", models.RoleUser, ViewAccount, true, models.RoleUser, true},
		{"user edits own profile", models.RoleUser, EditProfile, true, models.RoleUser, true},
		{"user deposits own", models.RoleUser, Deposit, true, models.RoleUser, true},
		{"user withdraws own", models.RoleUser, Withdraw, true, models.RoleUser, true},
		{"user views other", models.RoleUser, ViewAccount, false, models.RoleUser, false},
		{"user deposits other", models.RoleUser, Deposit, false, models.RoleUser, false},
		{"user creates", models.RoleUser, CreateAccount, false, "", false},
		{"user edits other", models.RoleUser, EditAccount, false, models.RoleUser, false},
		{"user deletes", models.RoleUser, DeleteAccount, false, models.RoleUser, false},

		{"clerk views regular user", models.RoleClerk, ViewAccount, false, models.RoleUser, true},
		{"clerk views manager", models.RoleClerk, ViewAccount, false, models.RoleManager, false},
		{"clerk views other clerk", models.RoleClerk, ViewAccount, false, models.RoleClerk, false},
		{"clerk deposits other", models.RoleClerk, Deposit, false, models.RoleUser, true},
		{"clerk withdraws other", models.RoleClerk, Withdraw, false, models.RoleUser, true},
		{"clerk creates", models.RoleClerk, CreateAccount, false, "", false},
		{"clerk edits account", models.RoleClerk, EditAccount, false, models.RoleUser, false},
		{"clerk deletes", models.RoleClerk, DeleteAccount, false, models.RoleUser, false},
		{"clerk deposits own", models.RoleClerk, Deposit, true, models.RoleClerk, true},

		{"manager views any", models.RoleManager, ViewAccount, false, models.RoleClerk, true},
		{"manager deposits any", models.RoleManager, Deposit, false, models.RoleUser, true},
		{"manager withdraws any", models.RoleManager, Withdraw, false, models.RoleUser, true},
		{"manager creates", models.RoleManager, CreateAccount, false, "", true},
		{"manager edits any", models.RoleManager, EditAccount, false, models.RoleUser, true},
		{"manager deletes any", models.RoleManager, DeleteAccount, false, models.RoleUser, true},
		{"manager edits own", models.RoleManager, EditAccount, true, models.RoleManager, true},

		{"unknown role denied", models.Role("intern"), Deposit, false, models.RoleUser, false},
		{"clerk self edit stays denied", models.RoleClerk, EditAccount, true, models.RoleClerk, false},
		{"user self edit stays denied", models.RoleUser, EditAccount, true, models.RoleUser, false},
		{"user self delete stays denied", models.RoleUser, DeleteAccount, true, models.RoleUser, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Allows(tc.actor, tc.action, tc.own, tc.targetRole))
		})
	}
}
