package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gatmbarz123/ec2-manager/internal/allowlist"
)

type Config struct {
	Region           string // AWS region for the shared EC2 client
	Host             string
	Port             string
	WebDir           string // directory holding index.html, ec2.html and icons/
	InstancesFile    string // optional YAML allow-list; empty uses the built-in list
	FleetLogSchedule string // cron spec for the fleet status logger; empty disables
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Region:           envOr("AWS_REGION", "eu-central-1"),
		Host:             envOr("HOST", "127.0.0.1"),
		Port:             envOr("PORT", "5000"),
		WebDir:           envOr("WEB_DIR", "web"),
		InstancesFile:    os.Getenv("INSTANCES_FILE"),
		FleetLogSchedule: envOr("FLEET_LOG_SCHEDULE", "@every 15m"),
	}
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// defaultEntries is the built-in allow-list used when no INSTANCES_FILE is
// configured.
var defaultEntries = []allowlist.Entry{
	{ID: "i-02d6e1b688f2184ec", Name: "Test-vpn", Country: "il"},
}

// LoadAllowList builds the immutable allow-list, from the YAML file at path
// when one is configured and from the built-in entries otherwise.
//
// File format:
//
//	instances:
//	  - id: i-02d6e1b688f2184ec
//	    name: Test-vpn
//	    country: il
//	  - id: i-0example111111111
//	    name: Demo
//	    country: us
//	    simulated: true
func LoadAllowList(path string) (*allowlist.List, error) {
	if path == "" {
		return allowlist.New(defaultEntries)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read allow-list %s: %w", path, err)
	}

	var file struct {
		Instances []allowlist.Entry `yaml:"instances"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse allow-list %s: %w", path, err)
	}

	return allowlist.New(file.Instances)
}
