package curriculum

import "fmt"

// ReferenceError reports a requirement that names a subject code missing
// from the catalog.
type ReferenceError struct {
	Subject string // Code of the subject owning the requirement
	Code    string // The missing prerequisite code
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("Subject %s references invalid prerequisite: %s", e.Subject, e.Code)
}

// Validate walks every requirement tree in the catalog and returns one
// *ReferenceError per reference to a code that is not in the catalog.
// Placeholder conditions without a code are not references.
//
// Validate never stops early; the returned slice is empty for a consistent
// catalog.
func Validate(c *Catalog) []error {
	var errs []error
	for _, s := range c.subjects {
		for _, req := range s.Requirements {
			Walk(req, func(cond Simple) {
				if cond.Code != "" && !c.Has(cond.Code) {
					errs = append(errs, &ReferenceError{Subject: s.Code, Code: cond.Code})
				}
			})
		}
	}
	return errs
}
