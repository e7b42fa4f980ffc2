// Package policy holds the role capability matrix. Every privileged
// operation goes through Allows before mutating anything; scattered role
// comparisons are deliberately kept out of the rest of the code.
package policy

import "go-teller/models"

// Action is an operation a logged-in actor can attempt.
type Action int

const (
	ViewAccount Action = iota
	EditProfile
	Deposit
	Withdraw
	CreateAccount
	EditAccount
	DeleteAccount
)

// Allows reports whether an actor with the given role may perform action
// on a target account. own marks the actor's own account as the target;
// targetRole is the target account's role (ignored when own is true or
// the action has no target, e.g. CreateAccount).
//
// The matrix: everyone handles their own account; clerks additionally
// see regular-user accounts and may move money on any account; managers
// may do everything, including direct edits and deletion.
func Allows(actor models.Role, action Action, own bool, targetRole models.Role) bool {
	if own {
		switch action {
		case ViewAccount, EditProfile, Deposit, Withdraw:
			return true
		}
		// Direct edit and deletion stay manager-only even on self.
	}

	switch actor {
	case models.RoleUser:
		return false
	case models.RoleClerk:
		switch action {
		case ViewAccount:
			return targetRole == models.RoleUser
		case Deposit, Withdraw:
			return true
		}
		return false
	case models.RoleManager:
		switch action {
		case ViewAccount, Deposit, Withdraw, CreateAccount, EditAccount, DeleteAccount:
			return true
		}
		return false
	}
	return false
}
