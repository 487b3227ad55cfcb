package view

import "strings"

// Badge is the visual class of a status value.
type Badge string

const (
	BadgeSuccess Badge = "success"
	BadgeError   Badge = "error"
	BadgeWarning Badge = "warning"
)

// ClassifyStatus maps an audit status to a badge. Unknown values are warnings.
func ClassifyStatus(status string) Badge {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "success":
		return BadgeSuccess
	case "error", "failure", "failed":
		return BadgeError
	default:
		return BadgeWarning
	}
}

// UserBadge returns the label and badge for a user's active flag.
func UserBadge(active bool) (string, Badge) {
	if active {
		return "Active", BadgeSuccess
	}
	return "Inactive", BadgeError
}
