package viewcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/shortlinks/internal/models"
)

type MemorySuite struct {
	suite.Suite
	cache *Memory
	ctx   context.Context
	clock time.Time
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(MemorySuite))
}

func (s *MemorySuite) SetupTest() {
	s.clock = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.cache = NewMemory(time.Minute)
	s.cache.now = func() time.Time { return s.clock }
	s.ctx = context.Background()
}

func (s *MemorySuite) TestRoundTrip() {
	_, gen, hit, err := s.cache.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.False(hit)

	links := []models.Link{{ID: 1, OwnerID: "user-1", ShortCode: "abc"}}
	s.Require().NoError(s.cache.Set(s.ctx, "user-1", gen, links))

	got, _, hit, err := s.cache.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.True(hit)
	s.Equal(links, got)

	s.Require().NoError(s.cache.Invalidate(s.ctx, "user-1"))
	_, _, hit, err = s.cache.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.False(hit)
}

func (s *MemorySuite) TestStaleGenerationIsNotStored() {
	_, gen, _, err := s.cache.Get(s.ctx, "user-1")
	s.Require().NoError(err)

	// мутация между чтением поколения и записью списка
	s.Require().NoError(s.cache.Invalidate(s.ctx, "user-1"))
	s.Require().NoError(s.cache.Set(s.ctx, "user-1", gen, []models.Link{}))

	_, newGen, hit, err := s.cache.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.False(hit)
	s.Equal(gen+1, newGen)
}

func (s *MemorySuite) TestOwnersAreIndependent() {
	s.Require().NoError(s.cache.Invalidate(s.ctx, "user-2"))
	s.Require().NoError(s.cache.Set(s.ctx, "user-1", 0, []models.Link{{ShortCode: "one"}}))

	_, _, hit, err := s.cache.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.True(hit)
}

func (s *MemorySuite) TestExpiry() {
	s.Require().NoError(s.cache.Set(s.ctx, "user-1", 0, nil))

	s.clock = s.clock.Add(time.Minute)
	_, _, hit, err := s.cache.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.False(hit)
}

func (s *MemorySuite) TestReturnedSliceIsACopy() {
	s.Require().NoError(s.cache.Set(s.ctx, "user-1", 0, []models.Link{{ShortCode: "one"}}))

	got, _, _, err := s.cache.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	got[0].ShortCode = "changed"

	again, _, _, err := s.cache.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("one", again[0].ShortCode)
}
