package transaction

import "github.com/rpggio/bizpilot/internal/resource"

// ValidateDraft checks fields required to record a transaction.
func ValidateDraft(d Draft) error {
	verr := resource.Check(ResourceName, d)
	if !d.Amount.IsPositive() {
		verr.Add("amount", "must be greater than 0")
	}
	if d.Date.IsZero() {
		verr.Add("date", "is required")
	}
	return verr.Err()
}
