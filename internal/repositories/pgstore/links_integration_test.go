//go:build integration

package pgstore

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
)

type PostgresLinkRepoSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repo      *LinkRepo
}

func TestPostgresLinkRepoSuite(t *testing.T) {
	suite.Run(t, new(PostgresLinkRepoSuite))
}

func (s *PostgresLinkRepoSuite) SetupSuite() {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("shortlinks"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.pool, err = db.NewPostgresConnection(ctx, dsn)
	s.Require().NoError(err)
	s.Require().NoError(db.MigratePostgres(ctx, s.pool))

	s.repo = NewLinkRepo(s.pool)
}

func (s *PostgresLinkRepoSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PostgresLinkRepoSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `DELETE FROM links`)
	s.Require().NoError(err)
}

func (s *PostgresLinkRepoSuite) create(owner, code string) *models.Link {
	link, err := s.repo.Create(context.Background(), &models.Link{
		OwnerID:     owner,
		OriginalURL: "https://example.com/" + code,
		ShortCode:   code,
	})
	s.Require().NoError(err)
	return link
}

func (s *PostgresLinkRepoSuite) TestLifecycle() {
	ctx := context.Background()
	link := s.create("user-1", "abc-123")

	got, err := s.repo.GetByShortCode(ctx, "abc-123")
	s.Require().NoError(err)
	s.Equal(link.ID, got.ID)

	updated, err := s.repo.Update(ctx, link.ID, models.LinkInput{OriginalURL: "https://example.com/b", ShortCode: "abc-123"})
	s.Require().NoError(err)
	s.Equal("https://example.com/b", updated.OriginalURL)
	s.False(updated.UpdatedAt.Before(link.UpdatedAt))

	s.Require().NoError(s.repo.Delete(ctx, link.ID))
	_, err = s.repo.GetByID(ctx, link.ID)
	s.Require().ErrorIs(err, repositories.ErrNotFound)
	s.Require().ErrorIs(s.repo.Delete(ctx, link.ID), repositories.ErrNotFound)

	_, err = s.repo.Update(ctx, link.ID, models.LinkInput{OriginalURL: "https://example.com/c", ShortCode: "zzz"})
	s.Require().ErrorIs(err, repositories.ErrNotFound)

	next := s.create("user-1", "abc-123")
	s.Greater(next.ID, link.ID)
}

func (s *PostgresLinkRepoSuite) TestUniqueViolation() {
	ctx := context.Background()
	s.create("user-1", "taken")

	_, err := s.repo.Create(ctx, &models.Link{OwnerID: "user-2", OriginalURL: "https://x.io", ShortCode: "taken"})
	s.Require().ErrorIs(err, repositories.ErrDuplicateKey)

	exists, err := s.repo.ExistsByShortCode(ctx, "taken")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *PostgresLinkRepoSuite) TestGetAllByOwner() {
	first := s.create("user-1", "one")
	s.create("user-2", "two")
	third := s.create("user-1", "three")

	links, err := s.repo.GetAllByOwner(context.Background(), "user-1")
	s.Require().NoError(err)
	s.Require().Len(links, 2)
	s.Equal(third.ID, links[0].ID)
	s.Equal(first.ID, links[1].ID)
}
