package background

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNoopTrigger(t *testing.T) {
	var trig Trigger = NoopTrigger{}

	assert.False(t, trig.IsSupported())
	assert.False(t, trig.IsPeriodicSupported())
	assert.False(t, trig.RegisterSync("tag"))
	assert.False(t, trig.RegisterPeriodicSync("tag", time.Second))
	assert.False(t, trig.Unregister("tag"))
}

func TestPollingTrigger_Registration(t *testing.T) {
	trig := NewPollingTrigger(
		func(ctx context.Context) {},
		func(ctx context.Context) bool { return false },
		time.Second, testLogger())

	assert.True(t, trig.IsSupported())
	assert.True(t, trig.IsPeriodicSupported())

	assert.True(t, trig.RegisterSync("one-shot"))
	assert.True(t, trig.RegisterPeriodicSync("periodic", time.Minute))
	assert.False(t, trig.RegisterPeriodicSync("bad", 0), "non-positive interval refused")

	assert.True(t, trig.Unregister("one-shot"))
	assert.True(t, trig.Unregister("periodic"))
	assert.False(t, trig.Unregister("unknown"))
}

func TestPollingTrigger_OneShotFiresOnce(t *testing.T) {
	var drains atomic.Int32
	trig := NewPollingTrigger(
		func(ctx context.Context) { drains.Add(1) },
		func(ctx context.Context) bool { return true },
		time.Second, testLogger())

	require.True(t, trig.RegisterSync("startup"))

	ctx := context.Background()
	trig.tick(ctx)
	trig.tick(ctx)

	assert.Equal(t, int32(1), drains.Load(), "one-shot tag fires exactly once")
}

func TestPollingTrigger_OfflineSuppressesFiring(t *testing.T) {
	var drains atomic.Int32
	online := atomic.Bool{}

	trig := NewPollingTrigger(
		func(ctx context.Context) { drains.Add(1) },
		func(ctx context.Context) bool { return online.Load() },
		time.Second, testLogger())

	require.True(t, trig.RegisterSync("startup"))

	ctx := context.Background()
	trig.tick(ctx)
	assert.Equal(t, int32(0), drains.Load())

	// Тег переживает оффлайн-пробы и срабатывает при появлении сети
	online.Store(true)
	trig.tick(ctx)
	assert.Equal(t, int32(1), drains.Load())
}

func TestPollingTrigger_PeriodicHonorsMinInterval(t *testing.T) {
	var drains atomic.Int32
	trig := NewPollingTrigger(
		func(ctx context.Context) { drains.Add(1) },
		func(ctx context.Context) bool { return true },
		time.Second, testLogger())

	require.True(t, trig.RegisterPeriodicSync("periodic", time.Hour))

	ctx := context.Background()
	trig.tick(ctx)
	trig.tick(ctx)
	trig.tick(ctx)

	assert.Equal(t, int32(1), drains.Load(), "min interval not yet elapsed")
}

func TestPollingTrigger_SingleDrainCoversAllDueTags(t *testing.T) {
	var drains atomic.Int32
	trig := NewPollingTrigger(
		func(ctx context.Context) { drains.Add(1) },
		func(ctx context.Context) bool { return true },
		time.Second, testLogger())

	require.True(t, trig.RegisterSync("a"))
	require.True(t, trig.RegisterSync("b"))
	require.True(t, trig.RegisterPeriodicSync("c", time.Millisecond))

	trig.tick(context.Background())

	// Очередь общая: один проход обслуживает все сработавшие теги
	assert.Equal(t, int32(1), drains.Load())
}

func TestPollingTrigger_StartStop(t *testing.T) {
	var drains atomic.Int32
	trig := NewPollingTrigger(
		func(ctx context.Context) { drains.Add(1) },
		func(ctx context.Context) bool { return true },
		10*time.Millisecond, testLogger())

	require.True(t, trig.RegisterSync("startup"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trig.Start(ctx)
	require.Eventually(t, func() bool {
		return drains.Load() == 1
	}, time.Second, 5*time.Millisecond)

	trig.Stop()
	// Повторный Stop безопасен
	trig.Stop()
}
