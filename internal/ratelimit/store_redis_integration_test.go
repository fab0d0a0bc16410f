//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"jyotish/internal/ratelimit"
	"jyotish/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *ratelimit.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = ratelimit.NewRedisStore(s.redis.Client, "rl:")
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestFixedWindow() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := s.store.Allow(ctx, "ip-a", 3, time.Minute)
		s.Require().NoError(err)
		s.True(res.Allowed)
		s.Equal(2-i, res.Remaining)
	}

	res, err := s.store.Allow(ctx, "ip-a", 3, time.Minute)
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.Equal(0, res.Remaining)
	s.WithinDuration(time.Now().Add(time.Minute), res.ResetAt, 5*time.Second)
}

func (s *RedisStoreSuite) TestKeysAreIndependent() {
	ctx := context.Background()

	_, err := s.store.Allow(ctx, "ip-a", 1, time.Minute)
	s.Require().NoError(err)

	res, err := s.store.Allow(ctx, "ip-b", 1, time.Minute)
	s.Require().NoError(err)
	s.True(res.Allowed)
}

func (s *RedisStoreSuite) TestWindowExpires() {
	ctx := context.Background()

	res, err := s.store.Allow(ctx, "ip-a", 1, time.Second)
	s.Require().NoError(err)
	s.True(res.Allowed)

	res, err = s.store.Allow(ctx, "ip-a", 1, time.Second)
	s.Require().NoError(err)
	s.False(res.Allowed)

	time.Sleep(1500 * time.Millisecond)

	res, err = s.store.Allow(ctx, "ip-a", 1, time.Second)
	s.Require().NoError(err)
	s.True(res.Allowed)
}
