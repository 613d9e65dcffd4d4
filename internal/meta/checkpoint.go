// SPDX-License-Identifier: MPL-2.0

package meta

import "time"

// UpdateCheck is the version-check bookkeeping record stored under
// KeyUpdateCheck. The actual network check lives at the CLI boundary; the
// core only tracks when it last happened and what it last saw.
type UpdateCheck struct {
	LastCheckDate   string `json:"lastCheckDate"`
	LastSeenVersion string `json:"lastSeenVersion"`
}

// updateCheckDateLayout is the date-only granularity of the check gate.
const updateCheckDateLayout = "2006-01-02"

// ShouldCheck reports whether a version check is due: at most once per
// calendar day, keyed on LastCheckDate.
func (u UpdateCheck) ShouldCheck(now time.Time) bool {
	return u.LastCheckDate != now.Format(updateCheckDateLayout)
}

// MarkChecked returns a record stamped with now's date and the version seen.
func (u UpdateCheck) MarkChecked(now time.Time, version string) UpdateCheck {
	return UpdateCheck{
		LastCheckDate:   now.Format(updateCheckDateLayout),
		LastSeenVersion: version,
	}
}
