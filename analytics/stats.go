package analytics

import (
	"context"
	"sort"
	"time"

	"cardhub/logging"
	"cardhub/models"
)

const (
	topN         = 5
	recentEvents = 10
)

type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats summarizes a card's events.
//
// UniqueVisitors counts distinct user-agent strings across every event kind.
// It is an approximation: two visitors on the same browser build count once,
// and one visitor who updates the browser counts twice.
type Stats struct {
	TotalVisits      int                     `json:"total_visits"`
	UniqueVisitors   int                     `json:"unique_visitors"`
	VCardDownloads   int                     `json:"vcard_downloads"`
	EmailClicks      int                     `json:"email_clicks"`
	PhoneClicks      int                     `json:"phone_clicks"`
	WebsiteClicks    int                     `json:"website_clicks"`
	TopLocations     []Count                 `json:"top_locations"`
	TopSources       []Count                 `json:"top_sources"`
	DeviceBreakdown  []Count                 `json:"device_breakdown"`
	BrowserBreakdown []Count                 `json:"browser_breakdown"`
	RecentEvents     []models.AnalyticsEvent `json:"recent_events"`
}

// tally counts names, remembering the order they were first seen in.
type tally struct {
	index  map[string]int
	counts []Count
}

func newTally() *tally {
	return &tally{index: map[string]int{}}
}

func (t *tally) add(name string) {
	if i, ok := t.index[name]; ok {
		t.counts[i].Count++
		return
	}
	t.index[name] = len(t.counts)
	t.counts = append(t.counts, Count{Name: name, Count: 1})
}

// sorted orders by count, descending; ties keep first-seen order. limit <= 0
// keeps every entry.
func (t *tally) sorted(limit int) []Count {
	out := make([]Count, len(t.counts))
	copy(out, t.counts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Aggregate reduces events, most recent first, into Stats. Lists are never
// nil.
func Aggregate(events []models.AnalyticsEvent) Stats {
	var s Stats
	agents := map[string]struct{}{}
	locations, sources, devices, browsers := newTally(), newTally(), newTally(), newTally()

	for _, e := range events {
		switch e.Kind {
		case models.EventVisit:
			s.TotalVisits++
		case models.EventVCardDownload:
			s.VCardDownloads++
		case models.EventEmailClick:
			s.EmailClicks++
		case models.EventPhoneClick:
			s.PhoneClicks++
		case models.EventWebsiteClick:
			s.WebsiteClicks++
		}

		agents[e.UserAgent] = struct{}{}

		if e.Country != nil && *e.Country != "" {
			locations.add(*e.Country)
		}
		if e.UTMSource != nil && *e.UTMSource != "" {
			sources.add(*e.UTMSource)
		}
		if e.Device != "" {
			devices.add(string(e.Device))
		}
		if e.Browser != "" {
			browsers.add(e.Browser)
		}
	}

	s.UniqueVisitors = len(agents)
	s.TopLocations = locations.sorted(topN)
	s.TopSources = sources.sorted(topN)
	s.DeviceBreakdown = devices.sorted(0)
	s.BrowserBreakdown = browsers.sorted(0)

	n := min(len(events), recentEvents)
	s.RecentEvents = make([]models.AnalyticsEvent, n)
	copy(s.RecentEvents, events[:n])

	return s
}

type DayVisits struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// VisitsByDay buckets visit events into the last days calendar days (UTC)
// ending at now, oldest first. Days without visits are present with 0.
func VisitsByDay(events []models.AnalyticsEvent, days int, now time.Time) []DayVisits {
	if days <= 0 {
		return []DayVisits{}
	}

	now = now.UTC()
	out := make([]DayVisits, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -(days - 1 - i)).Format(time.DateOnly)
		out[i] = DayVisits{Date: date}
		index[date] = i
	}

	for _, e := range events {
		if e.Kind != models.EventVisit {
			continue
		}
		if i, ok := index[e.Timestamp.UTC().Format(time.DateOnly)]; ok {
			out[i].Count++
		}
	}
	return out
}

type EventReader interface {
	ListEvents(ctx context.Context, cardID string) ([]models.AnalyticsEvent, error)
}

// Report is what the owner dashboard shows for one card.
type Report struct {
	Stats
	VisitsByDay []DayVisits `json:"visits_by_day"`
}

type Service struct {
	events EventReader
	now    func() time.Time
}

func NewService(events EventReader) *Service {
	return &Service{events: events, now: time.Now}
}

// CardAnalytics never fails. A store error yields zeroed stats.
func (s *Service) CardAnalytics(ctx context.Context, cardID string) Stats {
	return Aggregate(s.load(ctx, cardID))
}

// Report combines the stats with a daily visit series over the last days.
func (s *Service) Report(ctx context.Context, cardID string, days int) Report {
	events := s.load(ctx, cardID)
	return Report{
		Stats:       Aggregate(events),
		VisitsByDay: VisitsByDay(events, days, s.now()),
	}
}

func (s *Service) load(ctx context.Context, cardID string) []models.AnalyticsEvent {
	events, err := s.events.ListEvents(ctx, cardID)
	if err != nil {
		logging.Error().Err(err).Str("card_id", cardID).Msg("failed to load analytics events")
		return nil
	}
	return events
}
