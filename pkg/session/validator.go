package session

import (
	"strconv"

	"uigallery/pkg/user"
)

type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateAdmin
)

func (s State) AtLeast(min State) bool {
	return s >= min
}

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAdmin:
		return "admin"
	default:
		return "unauthenticated"
	}
}

// UserLookup is the read-only store view the validator needs.
type UserLookup interface {
	FindByEmail(email string) (*user.User, error)
}

// Validator answers "is this bundle an authenticated, non-disabled user"
// and "is that user currently an admin". It is read-only and fails closed:
// every lookup problem collapses to Unauthenticated.
type Validator struct {
	Users UserLookup
}

func NewValidator(users UserLookup) *Validator {
	return &Validator{Users: users}
}

func (v *Validator) Validate(b Bundle) (State, *user.User) {
	if b.Identity == "" {
		return StateUnauthenticated, nil
	}

	u, err := v.Users.FindByEmail(b.Identity)
	if err != nil || u == nil {
		return StateUnauthenticated, nil
	}

	if u.Disabled {
		return StateUnauthenticated, nil
	}

	// Epoch bump is the forced-logout mechanism: an old snapshot in the
	// cookie stops matching the stored counter.
	epoch := b.Epoch
	if epoch == "" {
		epoch = "0"
	}
	if epoch != strconv.FormatInt(u.SessionEpoch, 10) {
		return StateUnauthenticated, nil
	}

	if u.IsAdmin() {
		return StateAdmin, u
	}
	return StateAuthenticated, u
}
