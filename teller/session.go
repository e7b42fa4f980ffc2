package teller

import "go-teller/models"

// Session holds the authenticated actor's detached view of their own
// account for the duration of a login. Name and ID edits live only on
// this copy until Logout writes them back; balance and transactions are
// kept in step with the store whenever the session account is the target
// of a money operation.
//
// There is no flush on abnormal termination. A session that is dropped
// without Logout loses its unsaved edits, exactly as the original loses
// them on a browser refresh.
type Session struct {
	// Account is the detached copy the actor sees and edits.
	Account models.Account

	// storeID is the key the account had in the store at login time.
	// Self-service ID edits change Account.ID but the store is only
	// re-keyed at logout, so store lookups for "my account" go through
	// storeID until then.
	storeID string
}

// Owns reports whether id refers to the session's own account, under
// either its current (possibly edited) ID or its store key.
func (s *Session) Owns(id string) bool {
	return id == s.storeID || id == s.Account.ID
}
