package account

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")

	ErrTokenInvalid = errors.New("token is invalid")

	ErrExperienceNotFound = errors.New("work experience not found")
	ErrEducationNotFound  = errors.New("education not found")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrDuplicateSkill     = errors.New("skill already exists for this account")
)
