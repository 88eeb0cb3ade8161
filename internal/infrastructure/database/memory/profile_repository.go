package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/account"

	"github.com/google/uuid"
)

type ExperienceRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*account.WorkExperience
}

func NewExperienceRepository() *ExperienceRepository {
	return &ExperienceRepository{items: make(map[uuid.UUID]*account.WorkExperience)}
}

var _ account.ExperienceRepository = (*ExperienceRepository)(nil)

func (r *ExperienceRepository) List(_ context.Context, accountID uuid.UUID) ([]*account.WorkExperience, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*account.WorkExperience, 0)
	for _, e := range r.items {
		if e.AccountID == accountID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

func (r *ExperienceRepository) Get(_ context.Context, accountID, id uuid.UUID) (*account.WorkExperience, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok || e.AccountID != accountID {
		return nil, account.ErrExperienceNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *ExperienceRepository) Create(_ context.Context, e *account.WorkExperience) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *ExperienceRepository) Update(_ context.Context, e *account.WorkExperience) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[e.ID]
	if !ok || existing.AccountID != e.AccountID {
		return account.ErrExperienceNotFound
	}
	e.UpdatedAt = time.Now()
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *ExperienceRepository) Delete(_ context.Context, accountID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok || e.AccountID != accountID {
		return account.ErrExperienceNotFound
	}
	delete(r.items, id)
	return nil
}

type EducationRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*account.Education
}

func NewEducationRepository() *EducationRepository {
	return &EducationRepository{items: make(map[uuid.UUID]*account.Education)}
}

var _ account.EducationRepository = (*EducationRepository)(nil)

func (r *EducationRepository) List(_ context.Context, accountID uuid.UUID) ([]*account.Education, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*account.Education, 0)
	for _, e := range r.items {
		if e.AccountID == accountID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartYear != out[j].StartYear {
			return out[i].StartYear > out[j].StartYear
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

func (r *EducationRepository) Get(_ context.Context, accountID, id uuid.UUID) (*account.Education, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok || e.AccountID != accountID {
		return nil, account.ErrEducationNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *EducationRepository) Create(_ context.Context, e *account.Education) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *EducationRepository) Update(_ context.Context, e *account.Education) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[e.ID]
	if !ok || existing.AccountID != e.AccountID {
		return account.ErrEducationNotFound
	}
	e.UpdatedAt = time.Now()
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *EducationRepository) Delete(_ context.Context, accountID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok || e.AccountID != accountID {
		return account.ErrEducationNotFound
	}
	delete(r.items, id)
	return nil
}

type SkillRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*account.Skill
}

func NewSkillRepository() *SkillRepository {
	return &SkillRepository{items: make(map[uuid.UUID]*account.Skill)}
}

var _ account.SkillRepository = (*SkillRepository)(nil)

func (r *SkillRepository) List(_ context.Context, accountID uuid.UUID) ([]*account.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*account.Skill, 0)
	for _, s := range r.items {
		if s.AccountID == accountID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level > out[j].Level
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *SkillRepository) Get(_ context.Context, accountID, id uuid.UUID) (*account.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]
	if !ok || s.AccountID != accountID {
		return nil, account.ErrSkillNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *SkillRepository) Create(_ context.Context, s *account.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(s.AccountID, s.Name, uuid.Nil) {
		return account.ErrDuplicateSkill
	}

	now := time.Now()
	s.ID = uuid.New()
	s.CreatedAt = now
	s.UpdatedAt = now
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *SkillRepository) Update(_ context.Context, s *account.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[s.ID]
	if !ok || existing.AccountID != s.AccountID {
		return account.ErrSkillNotFound
	}
	if r.nameTaken(s.AccountID, s.Name, s.ID) {
		return account.ErrDuplicateSkill
	}
	s.UpdatedAt = time.Now()
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *SkillRepository) Delete(_ context.Context, accountID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok || s.AccountID != accountID {
		return account.ErrSkillNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *SkillRepository) nameTaken(accountID uuid.UUID, name string, except uuid.UUID) bool {
	for _, s := range r.items {
		if s.AccountID == accountID && s.ID != except && strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}
