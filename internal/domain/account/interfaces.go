package account

import "context"

// Remote submits signups to the backend.
type Remote interface {
	Signup(ctx context.Context, req SignupRequest) error
}
