package progress

import (
	"context"
	"testing"
	"time"

	"surveytranslator/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotBeforeAnyBatch(t *testing.T) {
	tracker := NewTracker()
	snap := tracker.Snapshot()
	assert.Equal(t, types.ProgressIdle, snap.Status)
	assert.NotEmpty(t, snap.Message)
}

func TestSetOverwritesSnapshot(t *testing.T) {
	tracker := NewTracker()
	tracker.Set(types.ProgressSnapshot{
		Status:          types.ProgressProcessingQuestion,
		CurrentQuestion: 2,
		TotalQuestions:  7,
	})

	snap := tracker.Snapshot()
	assert.Equal(t, types.ProgressProcessingQuestion, snap.Status)
	assert.Equal(t, 2, snap.CurrentQuestion)
	assert.Equal(t, 7, snap.TotalQuestions)
}

func TestStreamEmitsUpdates(t *testing.T) {
	tracker := NewTracker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := tracker.Stream(ctx, time.Hour, time.Hour)

	// First emission is the current state.
	first := <-stream
	assert.Equal(t, types.ProgressIdle, first.Status)

	tracker.Set(types.ProgressSnapshot{Status: types.ProgressProcessingBatch, CurrentQuestion: 1})
	next := <-stream
	assert.Equal(t, types.ProgressProcessingBatch, next.Status)
}

func TestStreamTerminatesOnCompletion(t *testing.T) {
	tracker := NewTracker()
	stream := tracker.Stream(context.Background(), time.Hour, time.Hour)
	<-stream // idle

	tracker.Set(types.ProgressSnapshot{Status: types.ProgressCompleted, Message: "done"})

	final := <-stream
	assert.Equal(t, types.ProgressCompleted, final.Status)

	_, open := <-stream
	assert.False(t, open, "stream must close after a terminal status")
}

func TestStreamStartedAfterCompletionClosesImmediately(t *testing.T) {
	tracker := NewTracker()
	tracker.Set(types.ProgressSnapshot{Status: types.ProgressError, Message: "boom"})

	stream := tracker.Stream(context.Background(), time.Hour, time.Hour)
	final := <-stream
	assert.Equal(t, types.ProgressError, final.Status)

	_, open := <-stream
	assert.False(t, open)
}

func TestStreamHeartbeat(t *testing.T) {
	tracker := NewTracker()
	stream := tracker.Stream(context.Background(), 10*time.Millisecond, time.Hour)
	<-stream // initial emission

	// No state changes: the next emission is a heartbeat of the same
	// snapshot.
	select {
	case snap := <-stream:
		assert.Equal(t, types.ProgressIdle, snap.Status)
	case <-time.After(time.Second):
		t.Fatal("expected a heartbeat emission")
	}
}

func TestStreamHardCapEmitsTimeout(t *testing.T) {
	tracker := NewTracker()
	stream := tracker.Stream(context.Background(), time.Hour, 30*time.Millisecond)

	var last types.ProgressSnapshot
	for snap := range stream {
		last = snap
	}
	assert.Equal(t, types.ProgressTimeout, last.Status)
}

func TestStreamStopsOnCallerCancel(t *testing.T) {
	tracker := NewTracker()
	ctx, cancel := context.WithCancel(context.Background())

	stream := tracker.Stream(ctx, time.Hour, time.Hour)
	<-stream
	cancel()

	select {
	case _, open := <-stream:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("stream did not close after cancellation")
	}
}

func TestSlowSubscriberNeverBlocksWriter(t *testing.T) {
	tracker := NewTracker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_ = tracker.Stream(ctx, time.Hour, time.Hour) // nobody reads

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*4; i++ {
			tracker.Set(types.ProgressSnapshot{Status: types.ProgressProcessingQuestion, CurrentQuestion: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publishing blocked on a slow subscriber")
	}

	require.Equal(t, subscriberBuffer*4-1, tracker.Snapshot().CurrentQuestion)
}
