package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk representation of an engine deployment: the
// governance policy (Global) plus the addresses a hc-serverd instance binds.
type Config struct {
	ListenAddress string `toml:"ListenAddress"`
	DataDir       string `toml:"DataDir"`
	Global        Global `toml:"Global"`
}

// Load reads path, creating a default configuration file if none exists yet.
// The decoded configuration is validated before being returned.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg.Global); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createDefault writes a conservative default configuration to path and
// returns it. The defaults satisfy Validate: 67% absolute-majority support,
// a one-day queue period, a six-hour boost period, a two-hour pended dwell
// requirement, a 1% compensation fee cap, and a confidence threshold of 4.
func createDefault(path string) (*Config, error) {
	cfg := &Config{
		ListenAddress: ":8090",
		DataDir:       "./hcgov-data",
		Global: Global{
			SupportPctWei:               "670000000000000000",
			QueuePeriodSeconds:          86400,
			BoostPeriodSeconds:          21600,
			BoostPeriodExtensionSeconds: 3600,
			PendedBoostPeriodSeconds:    7200,
			CompensationFeePct:          100,
			ConfidenceThresholdBase:     4,
		},
	}
	if err := Validate(cfg.Global); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
