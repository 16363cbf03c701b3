package model

import (
	"strconv"

	"github.com/0xsj/overwatch-pkg/types"
)

// Session is the caller's state as seen by the login callback. The host owns
// session semantics; only the authenticated account, if any, is carried here.
type Session struct {
	accountID types.Optional[types.ID]
}

// AnonymousSession is a session without an authenticated account.
func AnonymousSession() Session {
	return Session{accountID: types.None[types.ID]()}
}

// AuthenticatedSession is a session bound to an account. An empty id, or a
// numeric id that is not positive (hosts use 0 for guests), yields an
// anonymous session.
func AuthenticatedSession(accountID types.ID) Session {
	if accountID.IsEmpty() || isGuestID(accountID) {
		return AnonymousSession()
	}
	return Session{accountID: types.Some(accountID)}
}

func (s Session) AccountID() types.Optional[types.ID] { return s.accountID }

// IsAuthenticated reports whether the session carries an account id.
func (s Session) IsAuthenticated() bool {
	return s.accountID.IsPresent()
}

func isGuestID(id types.ID) bool {
	n, err := strconv.ParseInt(id.String(), 10, 64)
	return err == nil && n <= 0
}
