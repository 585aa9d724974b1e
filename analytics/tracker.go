// Package analytics records visitor interactions on public cards and reduces
// them into per-card statistics.
package analytics

import (
	"context"
	"sync"
	"time"

	"cardhub/geo"
	"cardhub/logging"
	"cardhub/metrics"
	"cardhub/models"
)

type EventWriter interface {
	AppendEvent(ctx context.Context, e *models.AnalyticsEvent) error
}

// Policy decides whether the current visitor may be tracked.
type Policy interface {
	ShouldTrack() bool
}

type Tracker struct {
	events EventWriter
	geo    geo.Locator
	now    func() time.Time
	wg     sync.WaitGroup
}

func NewTracker(events EventWriter, locator geo.Locator) *Tracker {
	if locator == nil {
		locator = geo.Disabled{}
	}
	return &Tracker{events: events, geo: locator, now: time.Now}
}

// Track records one event and returns once it is written or dropped. It never
// fails: a refused policy is a no-op, a failed geolocation leaves the country
// empty, and a failed write is logged.
func (t *Tracker) Track(ctx context.Context, policy Policy, hit Hit) {
	if !policy.ShouldTrack() {
		metrics.EventsTracked.WithLabelValues(string(hit.Kind), "skipped").Inc()
		return
	}
	t.record(ctx, hit)
}

// TrackAsync consults the policy on the calling goroutine, then records the
// event in the background so the caller's response is not held up.
func (t *Tracker) TrackAsync(policy Policy, hit Hit) {
	if !policy.ShouldTrack() {
		metrics.EventsTracked.WithLabelValues(string(hit.Kind), "skipped").Inc()
		return
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.record(context.Background(), hit)
	}()
}

// Wait blocks until every pending TrackAsync call finished.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

func (t *Tracker) record(ctx context.Context, hit Hit) {
	if !hit.Kind.Valid() {
		logging.Warn().Str("kind", string(hit.Kind)).Str("card_id", hit.CardID).Msg("unknown event kind dropped")
		metrics.EventsTracked.WithLabelValues("invalid", "skipped").Inc()
		return
	}

	utm := ExtractUTM(hit.Query)
	event := &models.AnalyticsEvent{
		CardID:      hit.CardID,
		Kind:        hit.Kind,
		Timestamp:   t.now().UTC(),
		Device:      ClassifyDevice(hit.UserAgent),
		UserAgent:   hit.UserAgent,
		Browser:     Browser(hit.UserAgent),
		UTMSource:   utm.Source,
		UTMMedium:   utm.Medium,
		UTMCampaign: utm.Campaign,
		UTMTerm:     utm.Term,
		UTMContent:  utm.Content,
	}

	// the write waits for the lookup so the stored country is final
	if country, err := t.geo.Country(ctx, hit.IP); err == nil && country != "" {
		event.Country = &country
	} else if err != nil {
		logging.Debug().Err(err).Str("card_id", hit.CardID).Msg("country lookup skipped")
	}

	if err := t.events.AppendEvent(ctx, event); err != nil {
		logging.Error().Err(err).
			Str("card_id", hit.CardID).
			Str("kind", string(hit.Kind)).
			Msg("failed to store analytics event")
		metrics.EventsTracked.WithLabelValues(string(hit.Kind), "failed").Inc()
		return
	}
	metrics.EventsTracked.WithLabelValues(string(hit.Kind), "stored").Inc()
}
