package task

import "github.com/rpggio/bizpilot/internal/resource"

// ValidateDraft checks fields required to create a task.
func ValidateDraft(d Draft) error {
	return resource.Check(ResourceName, d).Err()
}

// ValidatePatch checks a partial update. An empty patch is rejected.
func ValidatePatch(p Patch) error {
	verr := resource.Check(ResourceName, p)
	if p.Title == nil && p.Description == nil && p.DueDate == nil && p.Priority == nil && p.Status == nil {
		verr.Add("patch", "sets no fields")
	}
	return verr.Err()
}
