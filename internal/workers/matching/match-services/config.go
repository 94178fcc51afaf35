// internal/workers/matching/match-services/config.go
package matchservices

import (
	"time"

	"consultation-workers/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	MaxResults   int
	CacheEnabled bool
	CacheTTL     time.Duration
}

func LoadConfig(appConfig *config.Config) *Config {
	wcfg := config.GetWorkerConfig(appConfig, TaskType)
	return &Config{
		Timeout:      config.GetDuration(wcfg.Timeout),
		MaxResults:   appConfig.Matching.MaxResults,
		CacheEnabled: appConfig.Matching.CacheEnabled,
		CacheTTL:     time.Duration(appConfig.Matching.CacheTTL) * time.Second,
	}
}
