// internal/workers/assessment/analyze-responses/config.go
package analyzeresponses

import (
	"time"

	"consultation-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(appConfig *config.Config) *Config {
	wcfg := config.GetWorkerConfig(appConfig, TaskType)
	return &Config{
		Timeout: config.GetDuration(wcfg.Timeout),
	}
}
