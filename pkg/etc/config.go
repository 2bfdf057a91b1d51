package etc

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config is the configuration read from environment variables when the CLI
// starts. Command line flags take precedence over it.
type Config struct {
	ScannerTrivy ScannerTrivy
	Summary      Summary
}

type ScannerTrivy struct {
	Binary           string        `env:"VULNSUMMARY_TRIVY_BINARY" envDefault:"trivy"`
	Timeout          time.Duration `env:"VULNSUMMARY_TRIVY_TIMEOUT" envDefault:"60m"`
	SkipVersionCheck bool          `env:"VULNSUMMARY_TRIVY_SKIP_VERSION_CHECK" envDefault:"false"`
}

// GetTimeoutFlag returns the timeout formatted for Trivy's --timeout flag.
// Whole minutes are written as minutes, e.g. 60m instead of 1h0m0s.
func (c ScannerTrivy) GetTimeoutFlag() string {
	if c.Timeout > 0 && c.Timeout%time.Minute == 0 {
		return fmt.Sprintf("%dm", c.Timeout/time.Minute)
	}
	return c.Timeout.String()
}

type Summary struct {
	OutputFormat string `env:"VULNSUMMARY_OUTPUT_FORMAT" envDefault:"yaml"`
	Strict       bool   `env:"VULNSUMMARY_STRICT" envDefault:"false"`
}

func GetConfig() (Config, error) {
	var config Config
	err := env.Parse(&config)
	return config, err
}
