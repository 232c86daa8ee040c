package services_test

import (
	"github.com/talentmap/talentmap-api/config"
	"github.com/talentmap/talentmap-api/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Directory.TalentsPerPage = 2
	cfg.Directory.PagerMaxButtons = 5
	return cfg
}

func strPtr(s string) *string {
	return &s
}
