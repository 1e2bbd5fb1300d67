package tracking

import (
	"context"
	"errors"
	"testing"

	"cartAffinity/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	saved []domain.TrackingEvent
	err   error
}

func (f *fakeEventRepo) SaveEvent(_ context.Context, event domain.TrackingEvent) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, event)
	return nil
}

type fakeCounterStore struct {
	counts map[string]int64
	err    error
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counts: make(map[string]int64)}
}

func (f *fakeCounterStore) Increment(_ context.Context, shop, name string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[shop+":"+name]++
	return f.counts[shop+":"+name], nil
}

func (f *fakeCounterStore) Get(_ context.Context, shop, name string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[shop+":"+name], nil
}

func TestRecordEvent_AssignsIDAndBumpsCounter(t *testing.T) {
	repo := &fakeEventRepo{}
	counters := newFakeCounterStore()
	svc := NewTrackingService(repo, counters)

	event, err := svc.RecordEvent(context.Background(), domain.TrackingEvent{
		Shop:      "s1",
		EventType: domain.EventClick,
		ProductID: "P1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, event.ID, repo.saved[0].ID)
	assert.Equal(t, int64(1), counters.counts["s1:click"])
}

func TestRecordEvent_KeepsCallerID(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewTrackingService(repo, nil)

	event, err := svc.RecordEvent(context.Background(), domain.TrackingEvent{
		ID:        "caller-id",
		Shop:      "s1",
		EventType: domain.EventImpression,
	})
	require.NoError(t, err)
	assert.Equal(t, "caller-id", event.ID)
}

func TestRecordEvent_RejectsUnknownType(t *testing.T) {
	svc := NewTrackingService(&fakeEventRepo{}, nil)

	_, err := svc.RecordEvent(context.Background(), domain.TrackingEvent{
		Shop:      "s1",
		EventType: "pageview",
	})
	assert.ErrorContains(t, err, "unknown event type")
}

func TestRecordEvent_CounterFailureIsBestEffort(t *testing.T) {
	repo := &fakeEventRepo{}
	counters := newFakeCounterStore()
	counters.err = errors.New("redis down")
	svc := NewTrackingService(repo, counters)

	_, err := svc.RecordEvent(context.Background(), domain.TrackingEvent{
		Shop:      "s1",
		EventType: domain.EventClick,
	})
	require.NoError(t, err, "a counter outage must not drop the event")
	assert.Len(t, repo.saved, 1)
}

func TestCounts_WithoutStoreReturnsEmpty(t *testing.T) {
	svc := NewTrackingService(&fakeEventRepo{}, nil)

	counts, err := svc.Counts(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestCounts_ReturnsEveryEventType(t *testing.T) {
	counters := newFakeCounterStore()
	counters.counts["s1:click"] = 3
	counters.counts["s1:impression"] = 10
	svc := NewTrackingService(&fakeEventRepo{}, counters)

	counts, err := svc.Counts(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[domain.EventClick])
	assert.Equal(t, int64(10), counts[domain.EventImpression])
	assert.Equal(t, int64(0), counts[domain.EventPurchase])
}
