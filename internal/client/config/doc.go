// Package config loads runtime configuration for the landgrab CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults): Polygon Amoy and the
//     deployed registry addresses.
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are YAML, anything else is JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # File schema
//
// Intervals use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "rpc_url": "https://rpc-amoy.polygon.technology",
//	  "chain_id": 80002,
//	  "keystore": "/home/me/.landgrab/key.json",
//	  "position": {"lat": 51.520847, "lng": -0.195521},
//	  "online_check_interval": "5s",
//	  "log_format": "json"
//	}
//
// Environment variables are not read.
package config
