package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/landgrab/internal/client/locator"
	"github.com/dmitrijs2005/landgrab/internal/flagx"
)

var knownFlags = []string{"-r", "-k", "-d", "-g", "-i", "-m", "-l", "-p"}

// parseFlags populates selected Config fields from command-line flags.
//
//	-r string   JSON-RPC endpoint
//	-k string   keystore file used by "connect"
//	-d string   local database path
//	-g string   geocoder base url
//	-i int      online check interval in seconds
//	-m string   metrics listen address
//	-l string   log level
//	-p string   device position "lat,lng"
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RPCURL, "r", cfg.RPCURL, "JSON-RPC endpoint")
	fs.StringVar(&cfg.KeystorePath, "k", cfg.KeystorePath, "keystore file")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.StringVar(&cfg.GeocoderURL, "g", cfg.GeocoderURL, "geocoder base url")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address, empty to disable")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	position := fs.String("p", "", "device position as lat,lng")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -i overrides the file only when given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})

	if *position != "" {
		pos, err := locator.ParsePosition(*position)
		if err != nil {
			panic(err)
		}
		cfg.Position = &pos
	}
}
