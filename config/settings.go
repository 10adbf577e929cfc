// Package config provides configuration structures for the hit matching service.
// It defines matcher defaults, engine limits and server options.
package config

import (
	"fmt"
	"math"
	"runtime"
)

// MatcherSettings contains the defaults and limits applied by the engine when
// it runs a matcher.
type MatcherSettings struct {
	DefaultWindow      float64 `json:"default_window" yaml:"default_window"`           // Window used by proximity requests that omit one
	Workers            int     `json:"workers" yaml:"workers"`                         // Partitions matched in parallel for one request
	PartitionThreshold int     `json:"partition_threshold" yaml:"partition_threshold"` // Streams shorter than this are matched in a single call
	CacheSize          int     `json:"cache_size" yaml:"cache_size"`                   // Number of match results kept in the LRU cache (0 disables it)
	MaxTokens          int     `json:"max_tokens" yaml:"max_tokens"`                   // Largest stream accepted in one request

	// Typo tolerance of the text endpoint
	MinWordSizeFor1Typo  int `json:"min_word_size_for_1_typo" yaml:"min_word_size_for_1_typo"`   // Minimum query word length to allow 1 typo (e.g., 4)
	MinWordSizeFor2Typos int `json:"min_word_size_for_2_typos" yaml:"min_word_size_for_2_typos"` // Minimum query word length to allow 2 typos (e.g., 7)
}

// Validate checks the settings and returns one message per problem.
func (settings *MatcherSettings) Validate() []string {
	var errors []string

	if settings.DefaultWindow < 0 || math.IsNaN(settings.DefaultWindow) {
		errors = append(errors, "default_window must be a non-negative number")
	}
	if settings.Workers < 1 {
		errors = append(errors, "workers must be at least 1")
	}
	if settings.PartitionThreshold < 0 {
		errors = append(errors, "partition_threshold cannot be negative")
	}
	if settings.CacheSize < 0 {
		errors = append(errors, "cache_size cannot be negative")
	}
	if settings.MaxTokens < 1 {
		errors = append(errors, fmt.Sprintf("max_tokens must be at least 1 (got %d)", settings.MaxTokens))
	}
	if settings.MinWordSizeFor1Typo < 1 {
		errors = append(errors, "min_word_size_for_1_typo must be at least 1")
	}
	if settings.MinWordSizeFor2Typos <= settings.MinWordSizeFor1Typo {
		errors = append(errors, "min_word_size_for_2_typos must be greater than min_word_size_for_1_typo")
	}

	return errors
}

// ApplyDefaults applies default values to the matcher settings
func (settings *MatcherSettings) ApplyDefaults() {
	if settings.DefaultWindow == 0 {
		settings.DefaultWindow = 10
	}
	if settings.Workers == 0 {
		settings.Workers = runtime.GOMAXPROCS(0)
	}
	if settings.PartitionThreshold == 0 {
		settings.PartitionThreshold = 10000
	}
	if settings.MaxTokens == 0 {
		settings.MaxTokens = 5_000_000
	}

	// Set default typo tolerance settings if not specified
	if settings.MinWordSizeFor1Typo == 0 {
		settings.MinWordSizeFor1Typo = 4
	}
	if settings.MinWordSizeFor2Typos == 0 {
		settings.MinWordSizeFor2Typos = 7
	}

	// Ensure MinWordSizeFor2Typos is larger than MinWordSizeFor1Typo
	if settings.MinWordSizeFor2Typos <= settings.MinWordSizeFor1Typo {
		settings.MinWordSizeFor2Typos = settings.MinWordSizeFor1Typo + 1
	}
}
