package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/flagx"
	"github.com/dmitrijs2005/landgrab/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of Config. Keys missing from the file
// keep their current value.
type FileConfig struct {
	RPCURL       string `json:"rpc_url" yaml:"rpc_url"`
	ChainID      int64  `json:"chain_id" yaml:"chain_id"`
	UserRegistry string `json:"user_registry" yaml:"user_registry"`
	LandRegistry string `json:"land_registry" yaml:"land_registry"`
	LandSwap     string `json:"land_swap" yaml:"land_swap"`

	GeocoderURL string  `json:"geocoder_url" yaml:"geocoder_url"`
	GeocoderKey string  `json:"geocoder_key" yaml:"geocoder_key"`
	GeocoderRPS float64 `json:"geocoder_rps" yaml:"geocoder_rps"`

	Position     *models.Coordinates `json:"position" yaml:"position"`
	KeystorePath string              `json:"keystore" yaml:"keystore"`
	DBPath       string              `json:"db_path" yaml:"db_path"`

	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	MetricsAddr         string         `json:"metrics_addr" yaml:"metrics_addr"`
	LogFormat           string         `json:"log_format" yaml:"log_format"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
}

func fromConfig(c *Config) FileConfig {
	return FileConfig{
		RPCURL:              c.RPCURL,
		ChainID:             c.ChainID,
		UserRegistry:        c.UserRegistry,
		LandRegistry:        c.LandRegistry,
		LandSwap:            c.LandSwap,
		GeocoderURL:         c.GeocoderURL,
		GeocoderKey:         c.GeocoderKey,
		GeocoderRPS:         c.GeocoderRPS,
		Position:            c.Position,
		KeystorePath:        c.KeystorePath,
		DBPath:              c.DBPath,
		OnlineCheckInterval: timex.Duration{Duration: c.OnlineCheckInterval},
		MetricsAddr:         c.MetricsAddr,
		LogFormat:           c.LogFormat,
		LogLevel:            c.LogLevel,
	}
}

func (f FileConfig) apply(c *Config) {
	c.RPCURL = f.RPCURL
	c.ChainID = f.ChainID
	c.UserRegistry = f.UserRegistry
	c.LandRegistry = f.LandRegistry
	c.LandSwap = f.LandSwap
	c.GeocoderURL = f.GeocoderURL
	c.GeocoderKey = f.GeocoderKey
	c.GeocoderRPS = f.GeocoderRPS
	c.Position = f.Position
	c.KeystorePath = f.KeystorePath
	c.DBPath = f.DBPath
	c.OnlineCheckInterval = f.OnlineCheckInterval.Duration
	c.MetricsAddr = f.MetricsAddr
	c.LogFormat = f.LogFormat
	c.LogLevel = f.LogLevel
}

// parseFile overlays cfg with the file named by -c/-config. ".yaml" and
// ".yml" files are read as YAML, everything else as JSON. Read and decode
// errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := decodeFile(path, data, cfg); err != nil {
		panic(err)
	}
}

func decodeFile(path string, data []byte, cfg *Config) error {
	fc := fromConfig(cfg)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	}

	fc.apply(cfg)
	return nil
}
