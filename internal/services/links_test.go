package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/fsdevblog/shortlinks/internal/services/mocks"
	"github.com/fsdevblog/shortlinks/internal/validation"
)

type LinkServiceSuite struct {
	suite.Suite
	repo    *mocks.MockLinkRepository
	views   *mocks.MockListingCache
	service *LinkService
	ctx     context.Context
}

func TestLinkServiceSuite(t *testing.T) {
	suite.Run(t, new(LinkServiceSuite))
}

func (s *LinkServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.repo = mocks.NewMockLinkRepository(ctrl)
	s.views = mocks.NewMockListingCache(ctrl)
	s.service = NewLinkService(s.repo, s.views, nil)
	s.ctx = context.Background()
}

func (s *LinkServiceSuite) link(id int64, owner, code string) *models.Link {
	now := time.Now().UTC()
	return &models.Link{
		ID:          id,
		OwnerID:     owner,
		OriginalURL: gofakeit.URL(),
		ShortCode:   code,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *LinkServiceSuite) TestCreate() {
	in := models.LinkInput{OriginalURL: "https://example.com/a", ShortCode: "abc-123"}

	s.Run("success", func() {
		created := &models.Link{ID: 1, OwnerID: "user-1", OriginalURL: in.OriginalURL, ShortCode: in.ShortCode}
		gomock.InOrder(
			s.repo.EXPECT().ExistsByShortCode(gomock.Any(), "abc-123").Return(false, nil),
			s.repo.EXPECT().Create(gomock.Any(), &models.Link{
				OwnerID:     "user-1",
				OriginalURL: in.OriginalURL,
				ShortCode:   in.ShortCode,
			}).Return(created, nil),
			s.views.EXPECT().Invalidate(gomock.Any(), "user-1").Return(nil),
		)

		got, err := s.service.Create(s.ctx, "user-1", in)
		s.Require().NoError(err)
		s.Equal(created, got)
	})

	s.Run("unauthenticated", func() {
		_, err := s.service.Create(s.ctx, "", in)
		s.Require().ErrorIs(err, ErrUnauthenticated)
	})

	s.Run("validation error does not touch store", func() {
		_, err := s.service.Create(s.ctx, "user-1", models.LinkInput{OriginalURL: "nope", ShortCode: "ab"})
		s.Require().ErrorIs(err, ErrValidation)
		s.Require().ErrorIs(err, validation.ErrInvalidURL)
		s.Require().ErrorIs(err, validation.ErrInvalidShortCode)
		s.Equal("Please enter a valid URL, Short code must be at least 3 characters", err.Error())
	})

	s.Run("short code taken", func() {
		s.repo.EXPECT().ExistsByShortCode(gomock.Any(), "abc-123").Return(true, nil)

		_, err := s.service.Create(s.ctx, "user-1", in)
		s.Require().ErrorIs(err, ErrConflict)
	})

	s.Run("unique constraint wins the race", func() {
		s.repo.EXPECT().ExistsByShortCode(gomock.Any(), "abc-123").Return(false, nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, repositories.ErrDuplicateKey)

		_, err := s.service.Create(s.ctx, "user-1", in)
		s.Require().ErrorIs(err, ErrConflict)
	})

	s.Run("store failure is hidden", func() {
		s.repo.EXPECT().ExistsByShortCode(gomock.Any(), "abc-123").Return(false, nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection reset by peer"))

		_, err := s.service.Create(s.ctx, "user-1", in)
		s.Require().ErrorIs(err, ErrOperationFailed)
		s.Equal("Failed to create link. Please try again.", err.Error())
	})

	s.Run("exists check failure", func() {
		s.repo.EXPECT().ExistsByShortCode(gomock.Any(), "abc-123").Return(false, repositories.ErrUnknown)

		_, err := s.service.Create(s.ctx, "user-1", in)
		s.Require().ErrorIs(err, ErrOperationFailed)
	})

	s.Run("cache failure does not fail create", func() {
		s.repo.EXPECT().ExistsByShortCode(gomock.Any(), "abc-123").Return(false, nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(s.link(2, "user-1", "abc-123"), nil)
		s.views.EXPECT().Invalidate(gomock.Any(), "user-1").Return(errors.New("redis down"))

		_, err := s.service.Create(s.ctx, "user-1", in)
		s.Require().NoError(err)
	})
}

func (s *LinkServiceSuite) TestUpdate() {
	existing := s.link(7, "user-1", "abc-123")

	s.Run("same short code skips uniqueness check", func() {
		in := models.LinkInput{OriginalURL: "https://example.com/b", ShortCode: "abc-123"}
		updated := *existing
		updated.OriginalURL = in.OriginalURL

		s.repo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(existing, nil)
		s.repo.EXPECT().Update(gomock.Any(), int64(7), in).Return(&updated, nil)
		s.views.EXPECT().Invalidate(gomock.Any(), "user-1").Return(nil)

		got, err := s.service.Update(s.ctx, "user-1", 7, in)
		s.Require().NoError(err)
		s.Equal(in.OriginalURL, got.OriginalURL)
	})

	s.Run("renamed short code is checked", func() {
		in := models.LinkInput{OriginalURL: existing.OriginalURL, ShortCode: "taken"}
		s.repo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(existing, nil)
		s.repo.EXPECT().ExistsByShortCode(gomock.Any(), "taken").Return(true, nil)

		_, err := s.service.Update(s.ctx, "user-1", 7, in)
		s.Require().ErrorIs(err, ErrConflict)
	})

	s.Run("not found", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), int64(8)).Return(nil, repositories.ErrNotFound)

		_, err := s.service.Update(s.ctx, "user-1", 8, models.LinkInput{})
		s.Require().ErrorIs(err, ErrNotFound)
		s.Equal("Link not found", err.Error())
	})

	s.Run("other owner", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(existing, nil)

		_, err := s.service.Update(s.ctx, "user-2", 7, models.LinkInput{
			OriginalURL: "https://evil.example.com",
			ShortCode:   "abc-123",
		})
		s.Require().ErrorIs(err, ErrUnauthorized)
	})

	s.Run("invalid input", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(existing, nil)

		_, err := s.service.Update(s.ctx, "user-1", 7, models.LinkInput{OriginalURL: existing.OriginalURL, ShortCode: "ab"})
		s.Require().ErrorIs(err, ErrValidation)
	})

	s.Run("link removed concurrently", func() {
		in := models.LinkInput{OriginalURL: existing.OriginalURL, ShortCode: "abc-123"}
		s.repo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(existing, nil)
		s.repo.EXPECT().Update(gomock.Any(), int64(7), in).Return(nil, repositories.ErrNotFound)

		_, err := s.service.Update(s.ctx, "user-1", 7, in)
		s.Require().ErrorIs(err, ErrNotFound)
	})

	s.Run("store failure is hidden", func() {
		in := models.LinkInput{OriginalURL: existing.OriginalURL, ShortCode: "abc-123"}
		s.repo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(existing, nil)
		s.repo.EXPECT().Update(gomock.Any(), int64(7), in).Return(nil, repositories.ErrUnknown)

		_, err := s.service.Update(s.ctx, "user-1", 7, in)
		s.Require().ErrorIs(err, ErrOperationFailed)
		s.Equal("Failed to update link. Please try again.", err.Error())
	})
}

func (s *LinkServiceSuite) TestDelete() {
	existing := s.link(3, "user-1", "abc")

	s.Run("success", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(existing, nil)
		s.repo.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)
		s.views.EXPECT().Invalidate(gomock.Any(), "user-1").Return(nil)

		s.Require().NoError(s.service.Delete(s.ctx, "user-1", 3))
	})

	s.Run("unauthenticated", func() {
		s.Require().ErrorIs(s.service.Delete(s.ctx, "", 3), ErrUnauthenticated)
	})

	s.Run("other owner", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(existing, nil)
		s.Require().ErrorIs(s.service.Delete(s.ctx, "user-2", 3), ErrUnauthorized)
	})

	s.Run("store failure is hidden", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(existing, nil)
		s.repo.EXPECT().Delete(gomock.Any(), int64(3)).Return(repositories.ErrUnknown)

		err := s.service.Delete(s.ctx, "user-1", 3)
		s.Require().ErrorIs(err, ErrOperationFailed)
		s.Equal("Failed to delete link. Please try again.", err.Error())
	})

	s.Run("lookup failure is hidden", func() {
		s.repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(nil, repositories.ErrUnknown)

		err := s.service.Delete(s.ctx, "user-1", 3)
		s.Require().ErrorIs(err, ErrOperationFailed)
		s.Equal("Failed to delete link. Please try again.", err.Error())
	})
}

func (s *LinkServiceSuite) TestListByOwner() {
	links := []models.Link{*s.link(2, "user-1", "two"), *s.link(1, "user-1", "one")}

	s.Run("cache hit", func() {
		s.views.EXPECT().Get(gomock.Any(), "user-1").Return(links, int64(3), true, nil)

		got, err := s.service.ListByOwner(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Equal(links, got)
	})

	s.Run("cache miss fills cache with generation read before the store", func() {
		gomock.InOrder(
			s.views.EXPECT().Get(gomock.Any(), "user-1").Return(nil, int64(4), false, nil),
			s.repo.EXPECT().GetAllByOwner(gomock.Any(), "user-1").Return(links, nil),
			s.views.EXPECT().Set(gomock.Any(), "user-1", int64(4), links).Return(nil),
		)

		got, err := s.service.ListByOwner(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Equal(links, got)
	})

	s.Run("cache read error skips cache write", func() {
		s.views.EXPECT().Get(gomock.Any(), "user-1").Return(nil, int64(0), false, errors.New("redis down"))
		s.repo.EXPECT().GetAllByOwner(gomock.Any(), "user-1").Return(links, nil)

		got, err := s.service.ListByOwner(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Equal(links, got)
	})

	s.Run("cache write error is ignored", func() {
		s.views.EXPECT().Get(gomock.Any(), "user-1").Return(nil, int64(0), false, nil)
		s.repo.EXPECT().GetAllByOwner(gomock.Any(), "user-1").Return(links, nil)
		s.views.EXPECT().Set(gomock.Any(), "user-1", int64(0), links).Return(errors.New("redis down"))

		got, err := s.service.ListByOwner(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Equal(links, got)
	})

	s.Run("unauthenticated", func() {
		_, err := s.service.ListByOwner(s.ctx, "")
		s.Require().ErrorIs(err, ErrUnauthenticated)
	})
}

func (s *LinkServiceSuite) TestResolve() {
	s.Run("found", func() {
		link := s.link(1, "user-1", "abc-123")
		s.repo.EXPECT().GetByShortCode(gomock.Any(), "abc-123").Return(link, nil)

		got, err := s.service.Resolve(s.ctx, "abc-123")
		s.Require().NoError(err)
		s.Equal(link, got)
	})

	s.Run("not found", func() {
		s.repo.EXPECT().GetByShortCode(gomock.Any(), "missing").Return(nil, repositories.ErrNotFound)

		_, err := s.service.Resolve(s.ctx, "missing")
		s.Require().ErrorIs(err, ErrNotFound)
	})

	s.Run("malformed code skips store", func() {
		_, err := s.service.Resolve(s.ctx, "a.b")
		s.Require().ErrorIs(err, ErrNotFound)
	})

	s.Run("store failure", func() {
		s.repo.EXPECT().GetByShortCode(gomock.Any(), "abc").Return(nil, repositories.ErrUnknown)

		_, err := s.service.Resolve(s.ctx, "abc")
		s.Require().ErrorIs(err, ErrUnknown)
		s.Require().NotErrorIs(err, ErrNotFound)
	})
}
