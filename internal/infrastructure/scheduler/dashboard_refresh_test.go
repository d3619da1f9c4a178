package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingRefresher struct{ calls atomic.Int32 }

func (c *countingRefresher) RefreshCached(context.Context) (int, error) {
	c.calls.Add(1)
	return 1, nil
}

func TestNew_DisabledWithoutInterval(t *testing.T) {
	s, err := New(&countingRefresher{}, 0, nil)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestScheduler_RunsRefresh(t *testing.T) {
	r := &countingRefresher{}
	s, err := New(r, 20*time.Millisecond, nil)
	require.NoError(t, err)
	require.NotNil(t, s)

	s.Start()
	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())
}
