// internal/workers/routing/route-lead/config.go
package routelead

import (
	"time"

	"consultation-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// TopicARN is empty when routing notifications are disabled.
	TopicARN string
}

func LoadConfig(appConfig *config.Config) *Config {
	wcfg := config.GetWorkerConfig(appConfig, TaskType)
	cfg := &Config{
		Timeout: config.GetDuration(wcfg.Timeout),
	}
	if appConfig.Notifications.SNS.Enabled {
		cfg.TopicARN = appConfig.Notifications.SNS.TopicARN
	}
	return cfg
}
