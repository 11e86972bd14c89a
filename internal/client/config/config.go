package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/landgrab/internal/client/locator"
	"github.com/dmitrijs2005/landgrab/internal/client/models"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Polygon Amoy deployment of the Land Grab registries.
const (
	DefaultRPCURL       = "https://rpc-amoy.polygon.technology"
	DefaultChainID      = 80002
	DefaultUserRegistry = "0x5D7cc7cb12C4389940b9b756BCfA7921bF78Ca73"
	DefaultLandRegistry = "0xA45B1E87AfA000AB7c8B3099A43d57d38Fb8F0D0"
	DefaultLandSwap     = "0xADbF04c9df2d3c3F9Bb84951DA5cF64Ee5cD8162"
	DefaultGeocoderURL  = "https://mapapi.what3words.com/api"
)

// Config holds runtime settings for the landgrab CLI.
//
// Position is nil when the device location is unknown; the claim workflow
// then reports geolocation as unavailable. GeocoderRPS of zero disables
// client-side pacing. An empty MetricsAddr disables the /metrics endpoint.
type Config struct {
	RPCURL       string
	ChainID      int64
	UserRegistry string
	LandRegistry string
	LandSwap     string

	GeocoderURL string
	GeocoderKey string
	GeocoderRPS float64

	Position     *models.Coordinates
	KeystorePath string
	DBPath       string

	OnlineCheckInterval time.Duration
	MetricsAddr         string
	LogFormat           string
	LogLevel            string
}

// LoadDefaults populates c with defaults for the public test deployment.
func (c *Config) LoadDefaults() {
	c.RPCURL = DefaultRPCURL
	c.ChainID = DefaultChainID
	c.UserRegistry = DefaultUserRegistry
	c.LandRegistry = DefaultLandRegistry
	c.LandSwap = DefaultLandSwap
	c.GeocoderURL = DefaultGeocoderURL
	c.GeocoderRPS = 1
	c.DBPath = "landgrab.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RPCURL) == "" {
		return fmt.Errorf("rpc url is empty")
	}
	if c.ChainID <= 0 {
		return fmt.Errorf("chain id must be positive, got %d", c.ChainID)
	}
	for name, addr := range map[string]string{
		"user registry": c.UserRegistry,
		"land registry": c.LandRegistry,
		"land swap":     c.LandSwap,
	} {
		if !ethcommon.IsHexAddress(addr) {
			return fmt.Errorf("%s address %q is not a hex address", name, addr)
		}
	}
	if c.GeocoderURL == "" {
		return fmt.Errorf("geocoder url is empty")
	}
	if c.GeocoderRPS < 0 {
		return fmt.Errorf("geocoder rps must not be negative")
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive")
	}
	if c.Position != nil {
		if err := locator.CheckRange(*c.Position); err != nil {
			return fmt.Errorf("position: %w", err)
		}
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones. Invalid input panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
