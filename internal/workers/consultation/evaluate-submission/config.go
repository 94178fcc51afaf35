// internal/workers/consultation/evaluate-submission/config.go
package evaluatesubmission

import (
	"time"

	"consultation-workers/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	MaxResults int
}

func LoadConfig(appConfig *config.Config) *Config {
	wcfg := config.GetWorkerConfig(appConfig, TaskType)
	return &Config{
		Timeout:    config.GetDuration(wcfg.Timeout),
		MaxResults: appConfig.Matching.MaxResults,
	}
}
