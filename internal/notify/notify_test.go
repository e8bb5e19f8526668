package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subject    string
	data       []byte
	publishErr error
	flushes    int
	drained    bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.subject, f.data = subject, data
	return nil
}

func (f *fakeConn) FlushWithContext(context.Context) error {
	f.flushes++
	return nil
}

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

func TestNATSPublisherPublishRun(t *testing.T) {
	fc := &fakeConn{}
	p := newNATSPublisher(fc, "vaultsync.runs")

	ts := time.Date(2026, 10, 17, 4, 30, 0, 0, time.UTC)
	err := p.PublishRun(t.Context(), RunEvent{
		RunID:     "run-1",
		Total:     3,
		Synced:    2,
		Skipped:   1,
		Documents: []string{"a.md", "b.md"},
		Timestamp: ts,
	})
	require.NoError(t, err)

	assert.Equal(t, "vaultsync.runs", fc.subject)
	assert.Equal(t, 1, fc.flushes)

	var got RunEvent
	require.NoError(t, json.Unmarshal(fc.data, &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, []string{"a.md", "b.md"}, got.Documents)
	assert.True(t, got.Timestamp.Equal(ts))

	require.NoError(t, p.Close())
	assert.True(t, fc.drained)
}

func TestNATSPublisherStampsTimestamp(t *testing.T) {
	fc := &fakeConn{}
	p := newNATSPublisher(fc, "runs")

	require.NoError(t, p.PublishRun(t.Context(), RunEvent{RunID: "r"}))

	var got RunEvent
	require.NoError(t, json.Unmarshal(fc.data, &got))
	assert.False(t, got.Timestamp.IsZero())
}

func TestNATSPublisherPublishError(t *testing.T) {
	fc := &fakeConn{publishErr: errors.New("connection closed")}
	p := newNATSPublisher(fc, "runs")

	err := p.PublishRun(t.Context(), RunEvent{RunID: "r"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection closed")
	assert.Zero(t, fc.flushes)
}

func TestNewNATSPublisherRequiresSubject(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:4222", "")
	require.Error(t, err)
}

func TestNewNATSPublisherUnreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "runs")
	require.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	require.NoError(t, p.PublishRun(t.Context(), RunEvent{}))
	require.NoError(t, p.Close())
}
