package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/saeon/odp-identity/internal/flagx"
	"github.com/saeon/odp-identity/internal/timex"
)

// JsonConfig is the DTO used only for reading JSON configuration files.
// Interval fields use timex.Duration, which accepts both strings such as
// "24h" and integer nanoseconds. After unmarshalling, values are copied
// into the runtime Config.
type JsonConfig struct {
	DatabaseDSN                       string         `json:"database_dsn"`
	SecretKey                         string         `json:"secret_key"`
	VerificationTokenValidityDuration timex.Duration `json:"verification_token_validity_duration"`
	ResetTokenValidityDuration        timex.Duration `json:"reset_token_validity_duration"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When neither flag is set,
// nothing is loaded. An unreadable or invalid file panics: a config file
// that was asked for but cannot be honored should stop startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.VerificationTokenValidityDuration = time.Duration(c.VerificationTokenValidityDuration.Duration)
	config.ResetTokenValidityDuration = time.Duration(c.ResetTokenValidityDuration.Duration)
}
