package authflowrepo

import "time"

// AuthFlowState is what the login initiator remembers about a pending
// authorization request, keyed by the OAuth2 state parameter.
type AuthFlowState struct {
	Nonce     string
	CreatedAt time.Time
}

type Repo interface {
	Upsert(state string, authState *AuthFlowState) error
	Get(state string) (*AuthFlowState, error)
	Delete(state string) error
	DeleteOlderThan(cutoff time.Time) int
}
