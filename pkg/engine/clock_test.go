package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerPostSupersedes(t *testing.T) {
	clock := newMockClock()
	s := NewScheduler(clock, nil)

	var ran []string
	s.Post(TaskUpdateSuggestions, 100*time.Millisecond, func() { ran = append(ran, "first") })
	clock.Advance(50 * time.Millisecond)
	s.Post(TaskUpdateSuggestions, 100*time.Millisecond, func() { ran = append(ran, "second") })

	clock.Advance(60 * time.Millisecond)
	assert.Empty(t, ran)
	assert.True(t, s.Pending(TaskUpdateSuggestions))

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"second"}, ran)
	assert.False(t, s.Pending(TaskUpdateSuggestions))
}

func TestSchedulerCancel(t *testing.T) {
	clock := newMockClock()
	s := NewScheduler(clock, nil)

	fired := 0
	s.Post(TaskUpdateSuggestions, 10*time.Millisecond, func() { fired++ })
	s.Post(TaskRestartWord, 10*time.Millisecond, func() { fired++ })
	s.Cancel(TaskUpdateSuggestions, TaskRestartWord)

	clock.Advance(time.Second)
	assert.Zero(t, fired)
	assert.False(t, s.Pending(TaskRestartWord))
}

func TestSchedulerDispatch(t *testing.T) {
	clock := newMockClock()
	loop := NewLoop(4)
	s := NewScheduler(clock, loop.Dispatch)

	fired := false
	s.Post(TaskRestartWord, 10*time.Millisecond, func() { fired = true })
	clock.Advance(20 * time.Millisecond)
	require.False(t, fired)

	job := <-loop.Jobs()
	job()
	assert.True(t, fired)
}

func TestSchedulerCancelAfterDispatch(t *testing.T) {
	clock := newMockClock()
	loop := NewLoop(4)
	s := NewScheduler(clock, loop.Dispatch)

	fired := false
	s.Post(TaskRestartWord, 10*time.Millisecond, func() { fired = true })
	clock.Advance(20 * time.Millisecond)
	s.Cancel(TaskRestartWord)

	job := <-loop.Jobs()
	job()
	assert.False(t, fired)
}

func TestSelectionExpectation(t *testing.T) {
	clock := newMockClock()
	e := newSelectionExpectation(clock, 1500*time.Millisecond)
	assert.False(t, e.IsExpecting())
	assert.False(t, e.IsDelayed())

	e.Mark()
	clock.Advance(1499 * time.Millisecond)
	assert.True(t, e.IsExpecting())

	clock.Advance(2 * time.Millisecond)
	assert.False(t, e.IsExpecting())
	assert.True(t, e.IsDelayed())

	e.Clear()
	assert.False(t, e.IsExpecting())
	assert.False(t, e.IsDelayed())
}

func TestSpaceTimeTracker(t *testing.T) {
	clock := newMockClock()
	tr := &SpaceTimeTracker{clock: clock}
	assert.False(t, tr.HadSpace())

	tr.MarkSpace()
	clock.Advance(300 * time.Millisecond)
	assert.True(t, tr.IsDoubleSpace(700*time.Millisecond))
	clock.Advance(500 * time.Millisecond)
	assert.False(t, tr.IsDoubleSpace(700*time.Millisecond))
	assert.True(t, tr.HadSpace())

	tr.Clear()
	assert.False(t, tr.HadSpace())
}

func TestSentenceSeparatorsAlwaysHaveEnter(t *testing.T) {
	s := newSentenceSeparators(".!")
	assert.True(t, s.Contains('.'))
	assert.True(t, s.Contains(KeyEnter))
	assert.False(t, s.Contains(','))

	s.Reset("")
	assert.False(t, s.Contains('.'))
	assert.True(t, s.Contains(KeyEnter))
}
