package model

import (
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultDataDir      = "Data"
	DefaultRegistryFile = "datacenters.json"
	DefaultGameFile     = "game.json"
	DefaultLocaleDir    = "Locale"
	DefaultPrefix       = "pingscope"
	DefaultProbeTimeout = 30 * time.Second
)

type Config struct {
	Data    DataConfig    `yaml:"data"`
	Locale  LocaleConfig  `yaml:"locale"`
	Metrics MetricsConfig `yaml:"metrics"`
	Probe   ProbeConfig   `yaml:"probe"`
}

type DataConfig struct {
	Dir         string `yaml:"dir"`
	Datacenters string `yaml:"datacenters"`
	Game        string `yaml:"game"`
}

type LocaleConfig struct {
	Dir string `yaml:"dir"`
}

type MetricsConfig struct {
	Prefix string `yaml:"prefix"`
	Listen string `yaml:"listen"`
}

type ProbeConfig struct {
	Timeout Duration `yaml:"timeout"`
}

func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Data.Dir) == "" {
		c.Data.Dir = DefaultDataDir
	}

	if strings.TrimSpace(c.Data.Datacenters) == "" {
		c.Data.Datacenters = DefaultRegistryFile
	}

	if strings.TrimSpace(c.Data.Game) == "" {
		c.Data.Game = DefaultGameFile
	}

	if strings.TrimSpace(c.Locale.Dir) == "" {
		c.Locale.Dir = DefaultLocaleDir
	}

	if strings.TrimSpace(c.Metrics.Prefix) == "" {
		c.Metrics.Prefix = DefaultPrefix
	}

	if c.Probe.Timeout == 0 {
		c.Probe.Timeout = Duration(DefaultProbeTimeout)
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Data.Dir) == "" {
		return fmt.Errorf("data.dir is required")
	}

	if strings.TrimSpace(c.Data.Datacenters) == "" {
		return fmt.Errorf("data.datacenters is required")
	}

	if c.Probe.Timeout.Duration() <= 0 {
		return fmt.Errorf("probe.timeout must be positive")
	}

	listen := strings.TrimSpace(c.Metrics.Listen)
	if listen == "" {
		return nil
	}

	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return fmt.Errorf("metrics.listen must be a host:port address: %w", err)
	}

	if host != "" && net.ParseIP(host) == nil {
		return fmt.Errorf("metrics.listen host must be a valid IP address")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil || portNum <= 0 || portNum > 65535 {
		return fmt.Errorf("metrics.listen port must be between 1 and 65535")
	}

	return nil
}

// RegistryPath is the datacenter registry file under the data directory.
func (c Config) RegistryPath() string {
	return filepath.Join(c.Data.Dir, c.Data.Datacenters)
}

// GamePath is the game-server registry file under the data directory.
func (c Config) GamePath() string {
	return filepath.Join(c.Data.Dir, c.Data.Game)
}
