// Package identity provides minimal implementations of the console's
// collaborator interfaces. Real deployments plug in whatever identity
// provider issues their tokens; the console core never sees the difference.
package identity

import "context"

// Static carries a fixed token and a fixed access decision, typically read
// from the environment at startup.
type Static struct {
	AuthToken  string
	Privileged bool
}

// Token returns the configured credential verbatim.
func (s Static) Token(ctx context.Context) (string, error) {
	return s.AuthToken, nil
}

// IsPrivileged returns the configured access decision.
func (s Static) IsPrivileged(ctx context.Context) (bool, error) {
	return s.Privileged, nil
}
