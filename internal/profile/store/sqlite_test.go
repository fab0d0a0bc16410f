package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	chartmodels "jyotish/internal/chart/models"
	"jyotish/internal/profile/models"
	"jyotish/pkg/platform/sentinel"
)

type SQLiteStoreSuite struct {
	suite.Suite
	store *SQLite
	ctx   context.Context
}

func (s *SQLiteStoreSuite) SetupTest() {
	s.ctx = context.Background()
	store, err := NewSQLite(s.ctx, ":memory:")
	s.Require().NoError(err)
	s.store = store
}

func (s *SQLiteStoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}

func (s *SQLiteStoreSuite) newProfile(name string, createdAt time.Time) *models.Profile {
	return &models.Profile{
		ID: uuid.New(),
		Birth: chartmodels.BirthDetails{
			Name:        name,
			DateOfBirth: "1990-05-15",
			TimeOfBirth: "14:30",
			City:        "Chennai",
			State:       "Tamil Nadu",
			Country:     "India",
			Latitude:    13.0827,
			Longitude:   80.2707,
			Timezone:    "Asia/Kolkata",
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func (s *SQLiteStoreSuite) TestRoundTrip() {
	p := s.newProfile("Asha", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	s.Require().NoError(s.store.Create(s.ctx, p))

	found, err := s.store.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.ID, found.ID)
	s.Equal(p.Birth, found.Birth)
	s.True(p.CreatedAt.Equal(found.CreatedAt))
}

func (s *SQLiteStoreSuite) TestDuplicateID() {
	p := s.newProfile("Asha", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, p))
	s.Require().ErrorIs(s.store.Create(s.ctx, p), sentinel.ErrConflict)
}

func (s *SQLiteStoreSuite) TestGetUnknown() {
	_, err := s.store.Get(s.ctx, uuid.New())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *SQLiteStoreSuite) TestListOrdering() {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Create(s.ctx, s.newProfile("Older", base)))
	s.Require().NoError(s.store.Create(s.ctx, s.newProfile("Newer", base.Add(time.Hour))))

	got, err := s.store.List(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("Newer", got[0].Birth.Name)
	s.Equal("Older", got[1].Birth.Name)

	one, err := s.store.List(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(one, 1)
	s.Equal("Newer", one[0].Birth.Name)
}

// Sub-second timestamps with different fraction widths must still sort
// chronologically in the TEXT column.
func (s *SQLiteStoreSuite) TestListOrderingSubSecond() {
	base := time.Date(2024, 3, 1, 12, 0, 0, 100_000_000, time.UTC) // .1s
	older := s.newProfile("Older", base)
	newer := s.newProfile("Newer", base.Add(50*time.Millisecond)) // .15s
	s.Require().NoError(s.store.Create(s.ctx, older))
	s.Require().NoError(s.store.Create(s.ctx, newer))

	got, err := s.store.List(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(newer.ID, got[0].ID)
	s.Equal(older.ID, got[1].ID)
}

func (s *SQLiteStoreSuite) TestDelete() {
	p := s.newProfile("Asha", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, p))

	s.Require().NoError(s.store.Delete(s.ctx, p.ID))
	_, err := s.store.Get(s.ctx, p.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(s.ctx, p.ID), sentinel.ErrNotFound)
}

func (s *SQLiteStoreSuite) TestHealth() {
	s.Require().NoError(s.store.Health(s.ctx))
}
