package model

import "time"

// MatchEvent records a single matcher invocation for analytics tracking
type MatchEvent struct {
	Matcher      MatcherType   `json:"matcher"`
	Tokens       int           `json:"tokens"`
	Hits         int           `json:"hits"`
	Partitions   int           `json:"partitions"`
	Cached       bool          `json:"cached"`
	ResponseTime time.Duration `json:"response_time"`
	Timestamp    time.Time     `json:"timestamp"`
}

// MatcherStats aggregates the events of one matcher type
type MatcherStats struct {
	Matcher         MatcherType `json:"matcher"`
	Calls           int         `json:"calls"`
	Tokens          int         `json:"tokens"`
	Hits            int         `json:"hits"`
	CacheHits       int         `json:"cache_hits"`
	AvgResponseTime int64       `json:"avg_response_time"` // in microseconds
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	TotalMatches    int            `json:"total_matches"`
	TotalTokens     int            `json:"total_tokens"`
	TotalHits       int            `json:"total_hits"`
	AvgResponseTime int64          `json:"avg_response_time"` // in microseconds
	CacheHitRate    float64        `json:"cache_hit_rate"`
	Matchers        []MatcherStats `json:"matchers"`
	Last24h         int            `json:"last_24h"`
}
