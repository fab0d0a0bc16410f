package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	chartmodels "jyotish/internal/chart/models"
	dErrors "jyotish/pkg/domain-errors"
)

const maxNameLength = 128

// Profile is a saved set of birth details that charts can be recomputed
// from without the client resubmitting them.
type Profile struct {
	ID        uuid.UUID                `json:"id"`
	Birth     chartmodels.BirthDetails `json:"birthDetails"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

// NewProfile validates the birth details and stamps a fresh profile.
func NewProfile(id uuid.UUID, birth chartmodels.BirthDetails, now time.Time) (*Profile, error) {
	birth.Name = strings.TrimSpace(birth.Name)
	if len(birth.Name) > maxNameLength {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name must be at most 128 characters")
	}
	if err := birth.Validate(); err != nil {
		return nil, err
	}
	return &Profile{
		ID:        id,
		Birth:     birth,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
