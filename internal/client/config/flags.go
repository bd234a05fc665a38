package config

import (
	"flag"
	"os"
	"time"

	"github.com/openroad/stopfinder/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the directory API
//	-d string   path of the local database file
//	-t int      request timeout in seconds
//
// os.Args is filtered to the flags handled here so other packages can
// define their own.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the directory API")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "path of the local database file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
