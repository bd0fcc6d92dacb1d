package main

import (
	"sync"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/heuristic"
	"github.com/TheKrainBow/gomoku/internal/search"
)

const (
	maxAiDepth  = 10
	maxAiTtSize = 1 << 22
)

type Config struct {
	AiDepth          int               `json:"ai_depth"`
	AiTtSize         uint64            `json:"ai_tt_size"`
	AiTtBuckets      int               `json:"ai_tt_buckets"`
	AiLogSearchStats bool              `json:"ai_log_search_stats"`
	Rules            board.Rules       `json:"rules"`
	Heuristics       heuristic.Weights `json:"heuristics"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	opts := search.DefaultOptions()
	return Config{
		AiDepth:          opts.Depth,
		AiTtSize:         opts.TTSize,
		AiTtBuckets:      opts.TTBuckets,
		AiLogSearchStats: false,
		Rules:            board.DefaultRules(),
		Heuristics:       opts.Weights,
	}
}

func NewConfigStore(config Config) *ConfigStore {
	return &ConfigStore{config: normalizeConfig(config)}
}

func (s *ConfigStore) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *ConfigStore) Update(config Config) Config {
	config = normalizeConfig(config)
	s.mu.Lock()
	s.config = config
	s.mu.Unlock()
	return config
}

// SearchOptions turns the AI part of the config into searcher options.
func (c Config) SearchOptions() search.Options {
	return search.Options{
		Depth:     c.AiDepth,
		TTSize:    c.AiTtSize,
		TTBuckets: c.AiTtBuckets,
		Weights:   c.Heuristics,
	}
}

func normalizeConfig(config Config) Config {
	defaults := DefaultConfig()
	if config.AiDepth < 1 {
		config.AiDepth = 1
	}
	if config.AiDepth > maxAiDepth {
		config.AiDepth = maxAiDepth
	}
	if config.AiTtSize == 0 {
		config.AiTtSize = defaults.AiTtSize
	}
	if config.AiTtSize > maxAiTtSize {
		config.AiTtSize = maxAiTtSize
	}
	if config.AiTtBuckets <= 0 {
		config.AiTtBuckets = defaults.AiTtBuckets
	}
	if config.Heuristics == (heuristic.Weights{}) {
		config.Heuristics = defaults.Heuristics
	}
	return config
}
