package client

import "github.com/rpggio/bizpilot/internal/resource"

// ValidateDraft checks fields required to create a client.
func ValidateDraft(d Draft) error {
	return resource.Check(ResourceName, d).Err()
}
