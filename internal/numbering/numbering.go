// Package numbering generates the human-facing project and PO numbers.
// Both generators are pure: uniqueness depends on the caller reading the
// current count and inserting the new record atomically.
package numbering

import (
	"fmt"
	"time"
)

// ProjectNumber builds the next project number from how many projects
// already exist: a three-digit sequence followed by year and month, e.g.
// "001-2404" for the first project created in April 2024.
func ProjectNumber(existingCount int, now time.Time) string {
	return fmt.Sprintf("%03d-%s", existingCount+1, now.Format("0601"))
}

// PONumber appends a three-digit per-project sequence to the project
// number, e.g. "001-2404-003" for the third PO of project "001-2404".
func PONumber(projectNumber string, existingCount int) string {
	return fmt.Sprintf("%s-%03d", projectNumber, existingCount+1)
}
