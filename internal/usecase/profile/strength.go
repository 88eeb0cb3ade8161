package profile

import domainAccount "jobboard/internal/domain/account"

const (
	ActivityHigh   = "high"
	ActivityMedium = "medium"
	ActivityLow    = "low"
)

// Strength scores profile completeness out of 100.
func Strength(a *domainAccount.Account, m Metrics) int {
	score := 0
	if a.FirstName != "" {
		score += 10
	}
	if a.LastName != "" {
		score += 10
	}
	if a.Email != "" {
		score += 10
	}
	if a.ProfilePictureURL != nil && *a.ProfilePictureURL != "" {
		score += 10
	}
	if m.ExperienceCount > 0 {
		score += 20
	}
	if m.EducationCount > 0 {
		score += 20
	}
	if m.SkillCount > 0 {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}

func ActivityLevel(strength int) string {
	switch {
	case strength >= 80:
		return ActivityHigh
	case strength >= 50:
		return ActivityMedium
	default:
		return ActivityLow
	}
}
