package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-hit-matcher/model"
)

const maxEventsToKeep = 10000 // Keep last 10k events for performance

// Service implements analytics tracking and reporting
type Service struct {
	mutex  sync.RWMutex
	events []model.MatchEvent
	now    func() time.Time
}

// NewService creates a new in-memory analytics service
func NewService() *Service {
	return &Service{
		events: make([]model.MatchEvent, 0),
		now:    time.Now,
	}
}

// TrackMatchEvent records a new match event
func (s *Service) TrackMatchEvent(event model.MatchEvent) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}

	return nil
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() (model.AnalyticsDashboard, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	yesterday := s.now().Add(-24 * time.Hour)

	dashboard := model.AnalyticsDashboard{
		TotalMatches:    len(s.events),
		AvgResponseTime: calculateAvgResponseTime(s.events),
		Matchers:        getMatcherStats(s.events),
		Last24h:         len(filterEventsByTime(s.events, yesterday)),
	}

	cacheHits := 0
	for _, event := range s.events {
		dashboard.TotalTokens += event.Tokens
		dashboard.TotalHits += event.Hits
		if event.Cached {
			cacheHits++
		}
	}
	if len(s.events) > 0 {
		dashboard.CacheHitRate = float64(cacheHits) / float64(len(s.events)) * 100
	}

	return dashboard, nil
}

// filterEventsByTime returns events after the given time
func filterEventsByTime(events []model.MatchEvent, after time.Time) []model.MatchEvent {
	var filtered []model.MatchEvent
	for _, event := range events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateAvgResponseTime calculates average response time for events in microseconds
func calculateAvgResponseTime(events []model.MatchEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avgDuration := total / time.Duration(len(events))
	return avgDuration.Microseconds()
}

// getMatcherStats aggregates events per matcher, most used first
func getMatcherStats(events []model.MatchEvent) []model.MatcherStats {
	byMatcher := make(map[model.MatcherType][]model.MatchEvent)
	for _, event := range events {
		byMatcher[event.Matcher] = append(byMatcher[event.Matcher], event)
	}

	stats := make([]model.MatcherStats, 0, len(byMatcher))
	for matcher, matcherEvents := range byMatcher {
		entry := model.MatcherStats{
			Matcher:         matcher,
			Calls:           len(matcherEvents),
			AvgResponseTime: calculateAvgResponseTime(matcherEvents),
		}
		for _, event := range matcherEvents {
			entry.Tokens += event.Tokens
			entry.Hits += event.Hits
			if event.Cached {
				entry.CacheHits++
			}
		}
		stats = append(stats, entry)
	}

	// Sort by calls descending
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Calls != stats[j].Calls {
			return stats[i].Calls > stats[j].Calls
		}
		return stats[i].Matcher < stats[j].Matcher
	})

	return stats
}
