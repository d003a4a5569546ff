package client

import "github.com/rpggio/bizpilot/internal/resource"

// Status is the relationship stage of a client.
type Status string

const (
	StatusActive   Status = "active"
	StatusProspect Status = "prospect"
)

// Client is a customer record in the remote clients collection.
type Client struct {
	ID      resource.ID `json:"id"`
	Name    string      `json:"name"`
	Company string      `json:"company"`
	Email   string      `json:"email"`
	Phone   string      `json:"phone,omitempty"`
	Address string      `json:"address,omitempty"`
	Status  Status      `json:"status"`
}

func (c Client) EntityID() resource.ID {
	return c.ID
}

// Draft is the create payload.
type Draft struct {
	Name    string `json:"name" validate:"notblank"`
	Company string `json:"company" validate:"notblank"`
	Email   string `json:"email" validate:"notblank,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Status  Status `json:"status,omitempty" validate:"omitempty,oneof=active prospect"`
}

func (d Draft) Validate() error {
	return ValidateDraft(d)
}

func (d Draft) Placeholder(id resource.ID) Client {
	return Client{
		ID:      id,
		Name:    d.Name,
		Company: d.Company,
		Email:   d.Email,
		Phone:   d.Phone,
		Address: d.Address,
		Status:  d.Status,
	}
}

// Patch is unused: the clients collection has no update.
type Patch = resource.NoPatch[Client]
