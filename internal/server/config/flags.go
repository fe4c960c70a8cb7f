package config

import (
	"flag"
	"os"
	"time"

	"github.com/saeon/odp-identity/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-s string   link-token HMAC secret key
//	-v int      email-verification token validity, minutes
//	-r int      password-reset token validity, minutes
//
// Args are first filtered with flagx.FilterArgs so flags owned by other
// components (such as -c/-config) pass through untouched. Duration flags
// are accepted as integer minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-v", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	verificationValidity := fs.Int("v", int(config.VerificationTokenValidityDuration.Minutes()), "verification_token_validity_duration (in minutes)")
	resetValidity := fs.Int("r", int(config.ResetTokenValidityDuration.Minutes()), "reset_token_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.VerificationTokenValidityDuration = time.Duration(*verificationValidity) * time.Minute
	config.ResetTokenValidityDuration = time.Duration(*resetValidity) * time.Minute
}
