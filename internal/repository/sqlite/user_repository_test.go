package sqlite_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/repository"
	"github.com/vytor/bondflash/internal/repository/sqlite"
	"github.com/vytor/bondflash/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestFirstOnEmptyDatabase() {
	u, err := s.repo.First(testutil.Quiet())
	s.Require().NoError(err)
	s.Assert().Nil(u)
}

func (s *UserRepositorySuite) TestCreateAndGet() {
	ctx := testutil.Quiet()

	created, err := s.repo.Create(ctx)
	s.Require().NoError(err)
	s.Assert().Greater(created.ID, int64(0))
	s.Assert().Equal(0, created.CurrentXP)
	s.Assert().Equal(1, created.Level)
	s.Assert().Equal([]string{}, created.OwnedThemes)

	got, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(created.ID, got.ID)

	first, err := s.repo.First(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(created.ID, first.ID)
}

func (s *UserRepositorySuite) TestGetMissing() {
	u, err := s.repo.Get(testutil.Quiet(), 999)
	s.Require().NoError(err)
	s.Assert().Nil(u)
}

func (s *UserRepositorySuite) TestUpdateWritesEveryField() {
	ctx := testutil.Quiet()
	id := testutil.InsertUser(s.T(), s.db, 0, 1, 300)

	updated, err := s.repo.Update(ctx, id, func(u *models.User) error {
		u.CurrentXP = 450
		u.Level = 3
		u.Currency -= 200
		u.StreakFreezes = 2
		u.OwnedThemes = append(u.OwnedThemes, "rose")
		u.SpicyDiceUnlocked = true
		return nil
	})
	s.Require().NoError(err)
	s.Assert().Equal(100, updated.Currency)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(450, got.CurrentXP)
	s.Assert().Equal(3, got.Level)
	s.Assert().Equal(100, got.Currency)
	s.Assert().Equal(2, got.StreakFreezes)
	s.Assert().Equal([]string{"rose"}, got.OwnedThemes)
	s.Assert().True(got.SpicyDiceUnlocked)
}

func (s *UserRepositorySuite) TestUpdateRollsBackOnError() {
	ctx := testutil.Quiet()
	id := testutil.InsertUser(s.T(), s.db, 10, 1, 50)
	boom := errors.New("boom")

	_, err := s.repo.Update(ctx, id, func(u *models.User) error {
		u.Currency = 0
		return boom
	})
	s.Require().ErrorIs(err, boom)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(50, got.Currency)
}

func (s *UserRepositorySuite) TestUpdateMissingUser() {
	called := false
	_, err := s.repo.Update(testutil.Quiet(), 42, func(*models.User) error {
		called = true
		return nil
	})
	s.Assert().ErrorIs(err, repository.ErrNotFound)
	s.Assert().False(called)
}

func (s *UserRepositorySuite) TestList() {
	ctx := testutil.Quiet()
	a := testutil.InsertUser(s.T(), s.db, 0, 1, 0)
	b := testutil.InsertUser(s.T(), s.db, 100, 2, 0)

	users, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Assert().Equal(a, users[0].ID)
	s.Assert().Equal(b, users[1].ID)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
