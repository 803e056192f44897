package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("07:05")
	require.NoError(t, err)
	assert.Equal(t, "0 5 7 * * *", spec)

	for _, bad := range []string{"", "7", "24:00", "12:60", "ab:cd", "1:2:3"} {
		_, err := buildDailySpec(bad)
		assert.Error(t, err, bad)
	}
}

func TestSchedulerService_ScheduleInterval(t *testing.T) {
	sched := NewSchedulerService(time.UTC, nil)

	_, err := sched.ScheduleInterval(-time.Second, func() {})
	assert.Error(t, err)

	_, err = sched.ScheduleInterval(500*time.Millisecond, func() {})
	require.NoError(t, err)
	_, err = sched.ScheduleDaily("23:59", func() {})
	require.NoError(t, err)
	assert.Equal(t, 2, sched.Entries())
}

func TestSchedulerService_RunsIntervalJobs(t *testing.T) {
	sched := NewSchedulerService(time.UTC, nil)
	fired := make(chan struct{}, 4)

	_, err := sched.ScheduleInterval(time.Second, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	_, err = sched.ScheduleInterval(time.Second, func() { panic("boom") })
	require.NoError(t, err)

	sched.Start()
	defer sched.Stop()

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("interval job never fired")
	}
}

func TestSchedulerService_NowUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	sched := NewSchedulerService(loc, nil)
	assert.Equal(t, loc, sched.Now().Location())
}

func TestHistoryService_ScheduleDailySnapshot(t *testing.T) {
	env := newTestEnv(t)
	sched := NewSchedulerService(time.UTC, nil)

	require.NoError(t, env.history.ScheduleDailySnapshot(sched, "23:59", nil))
	assert.Equal(t, 1, sched.Entries())
	assert.Error(t, env.history.ScheduleDailySnapshot(sched, "noon", nil))
}

func TestSchedulerService_SkipsOverlappingTicks(t *testing.T) {
	sched := NewSchedulerService(time.UTC, nil)

	var running, maxRunning, runs atomic.Int32
	_, err := sched.ScheduleInterval(time.Second, func() {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			m := maxRunning.Load()
			if n <= m || maxRunning.CompareAndSwap(m, n) {
				break
			}
		}
		runs.Add(1)
		time.Sleep(2500 * time.Millisecond)
	})
	require.NoError(t, err)

	sched.Start()
	time.Sleep(4500 * time.Millisecond)
	sched.Stop()

	assert.GreaterOrEqual(t, runs.Load(), int32(1))
	assert.Equal(t, int32(1), maxRunning.Load())
}
