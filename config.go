package main

import (
	"encoding/json"
	"os"
	"strconv"
)

type Config struct {
	Priority   int    `json:"priority"`
	Tiebreaker int    `json:"tiebreaker"`
	Registry   string `json:"registry"`
	Host       string `json:"host"`
	Port       int    `json:"port"`
	APIPort    int    `json:"api_port"`
}

func LoadConfig(path string) *Config {
	f, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	c := &Config{}
	if err := json.NewDecoder(f).Decode(c); err != nil {
		panic(err)
	}

	return c
}

// loadConfig builds the config from an optional CONFIG file with env vars
// layered on top.
func loadConfig() *Config {
	cfg := &Config{
		Host:     "127.0.0.1",
		Registry: "127.0.0.1:7000",
	}

	if path := os.Getenv("CONFIG"); path != "" {
		cfg = LoadConfig(path)
	}

	if v := os.Getenv("NODE_PRIORITY"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Priority = p
		}
	}

	if v := os.Getenv("NODE_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.Tiebreaker = id
		}
	}

	if v := os.Getenv("REGISTRY_ADDR"); v != "" {
		cfg.Registry = v
	}

	if v := os.Getenv("NODE_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("NODE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}

	if v := os.Getenv("API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.APIPort = port
		}
	}

	return cfg
}
