package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLockClient struct {
	taken    map[string]string
	setErr   error
	released []string
}

func (s *stubLockClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if s.setErr != nil {
		return redis.NewBoolResult(false, s.setErr)
	}
	if _, ok := s.taken[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	s.taken[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (s *stubLockClient) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	if s.taken[keys[0]] == args[0] {
		delete(s.taken, keys[0])
		s.released = append(s.released, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func TestLockRepositoryAcquireRelease(t *testing.T) {
	client := &stubLockClient{taken: map[string]string{}}
	repo := NewLockRepository(client)

	token, ok, err := repo.Acquire(context.Background(), "reservation:h1:2024-03-13", time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = repo.Acquire(context.Background(), "reservation:h1:2024-03-13", time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Release(context.Background(), "reservation:h1:2024-03-13", "someone-else"))
	assert.Empty(t, client.released)

	require.NoError(t, repo.Release(context.Background(), "reservation:h1:2024-03-13", token))
	assert.Equal(t, []string{"reservation:h1:2024-03-13"}, client.released)
}

func TestLockRepositoryAcquireError(t *testing.T) {
	repo := NewLockRepository(&stubLockClient{taken: map[string]string{}, setErr: errors.New("down")})

	_, ok, err := repo.Acquire(context.Background(), "k", time.Second)
	assert.Error(t, err)
	assert.False(t, ok)
}
