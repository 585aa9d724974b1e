package analytics

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardhub/models"
	"cardhub/optout"
)

type fakeEvents struct {
	mu     sync.Mutex
	events []models.AnalyticsEvent
	err    error
	// seen records whether the geo lookup had returned when the write happened
	geoDone *atomic.Bool
	seen    []bool
}

func (f *fakeEvents) AppendEvent(_ context.Context, e *models.AnalyticsEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.geoDone != nil {
		f.seen = append(f.seen, f.geoDone.Load())
	}
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeEvents) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeGeo struct {
	country string
	err     error
	delay   time.Duration
	done    atomic.Bool
}

func (g *fakeGeo) Country(context.Context, string) (string, error) {
	time.Sleep(g.delay)
	g.done.Store(true)
	return g.country, g.err
}

func allowAll() *optout.Policy {
	return optout.NewPolicy(optout.NewMemory(), false)
}

func TestTrack_BuildsEvent(t *testing.T) {
	store := &fakeEvents{}
	tr := NewTracker(store, &fakeGeo{country: "Portugal"})
	fixed := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return fixed }

	tr.Track(context.Background(), allowAll(), Hit{
		CardID:    "card-1",
		Kind:      models.EventVCardDownload,
		UserAgent: uaIPad,
		IP:        "8.8.8.8",
		Query:     url.Values{"utm_source": {"newsletter"}},
	})

	require.Equal(t, 1, store.count())
	e := store.events[0]
	assert.Equal(t, "card-1", e.CardID)
	assert.Equal(t, models.EventVCardDownload, e.Kind)
	assert.Equal(t, fixed, e.Timestamp)
	assert.Equal(t, models.DeviceTablet, e.Device)
	assert.Equal(t, uaIPad, e.UserAgent)
	require.NotNil(t, e.Country)
	assert.Equal(t, "Portugal", *e.Country)
	require.NotNil(t, e.UTMSource)
	assert.Equal(t, "newsletter", *e.UTMSource)
	assert.Nil(t, e.UTMMedium)
}

func TestTrack_WritesAfterGeoSettles(t *testing.T) {
	g := &fakeGeo{err: errors.New("timeout"), delay: 20 * time.Millisecond}
	store := &fakeEvents{geoDone: &g.done}
	tr := NewTracker(store, g)

	tr.Track(context.Background(), allowAll(), Hit{CardID: "c", Kind: models.EventVisit, UserAgent: uaDesktop})

	require.Equal(t, 1, store.count())
	assert.Equal(t, []bool{true}, store.seen)
	assert.Nil(t, store.events[0].Country, "failed lookup leaves country empty")
}

func TestTrack_OptedOutWritesNothing(t *testing.T) {
	store := &fakeEvents{}
	tr := NewTracker(store, nil)

	settings := optout.NewMemory()
	policy := optout.NewPolicy(settings, false)
	policy.SetOptOut(true)

	tr.Track(context.Background(), policy, Hit{CardID: "c", Kind: models.EventVisit})
	tr.TrackAsync(policy, Hit{CardID: "c", Kind: models.EventVisit})
	tr.Wait()

	assert.Equal(t, 0, store.count())
}

func TestTrack_DoNotTrackWritesNothing(t *testing.T) {
	store := &fakeEvents{}
	tr := NewTracker(store, nil)

	tr.Track(context.Background(), optout.NewPolicy(optout.NewMemory(), true), Hit{CardID: "c", Kind: models.EventVisit})
	assert.Equal(t, 0, store.count())
}

func TestTrack_StoreFailureIsSwallowed(t *testing.T) {
	store := &fakeEvents{err: errors.New("database is locked")}
	tr := NewTracker(store, nil)

	assert.NotPanics(t, func() {
		tr.Track(context.Background(), allowAll(), Hit{CardID: "c", Kind: models.EventEmailClick})
	})
	assert.Equal(t, 0, store.count())
}

func TestTrack_UnknownKindDropped(t *testing.T) {
	store := &fakeEvents{}
	tr := NewTracker(store, nil)

	tr.Track(context.Background(), allowAll(), Hit{CardID: "c", Kind: "share_click"})
	assert.Equal(t, 0, store.count())
}

func TestTrackAsync_WaitDrains(t *testing.T) {
	store := &fakeEvents{}
	tr := NewTracker(store, &fakeGeo{country: "Spain", delay: 5 * time.Millisecond})

	for i := 0; i < 20; i++ {
		tr.TrackAsync(allowAll(), Hit{CardID: "c", Kind: models.EventVisit, UserAgent: uaIPhone})
	}
	tr.Wait()

	assert.Equal(t, 20, store.count())
}
