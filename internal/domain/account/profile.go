package account

import (
	"time"

	"github.com/google/uuid"
)

type WorkExperience struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Title       string
	Company     string
	Location    string
	StartDate   time.Time
	EndDate     *time.Time
	IsCurrent   bool
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Education struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Degree       string
	Institution  string
	FieldOfStudy string
	StartYear    int
	EndYear      *int
	Grade        string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	SkillLevelMin     = 1
	SkillLevelMax     = 5
	SkillLevelDefault = 3
)

var skillLevelLabels = map[int]string{
	1: "Beginner",
	2: "Basic",
	3: "Intermediate",
	4: "Advanced",
	5: "Expert",
}

type Skill struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Name      string
	Level     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Skill) LevelDisplay() string {
	return skillLevelLabels[s.Level]
}

func (s *Skill) LevelPercentage() int {
	return s.Level * 20
}
