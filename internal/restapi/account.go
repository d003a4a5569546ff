package restapi

import (
	"context"
	"net/http"

	"github.com/rpggio/bizpilot/internal/domain/account"
)

// Accounts posts signups to /users/signup.
type Accounts struct {
	client *Client
}

func NewAccounts(client *Client) *Accounts {
	return &Accounts{client: client}
}

func (a *Accounts) Signup(ctx context.Context, req account.SignupRequest) error {
	_, err := a.client.do(ctx, "signup", http.MethodPost, "users/signup", req)
	return err
}
