package config

import (
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// LogConfig logging configuration
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// MockConfig mock lookup service configuration
type MockConfig struct {
	Addr    string `yaml:"addr"`
	ApiKey  string `yaml:"api_key"`
	Seed    int64  `yaml:"seed"`
	DelayMs int    `yaml:"delay_ms"`
}

type AppConfig struct {
	System SysConfig  `yaml:"system"`
	Logger LogConfig  `yaml:"logger"`
	Mock   MockConfig `yaml:"mock"`
}

// GetLogDir returns the log directory under the workdir
func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

// DBPath is the bbolt file holding settings and history.
func (c *AppConfig) DBPath() string {
	return path.Join(c.System.Workdir, "pricechecker.db")
}

func (c *AppConfig) initDirs() error {
	for _, dir := range []string{c.System.Workdir, c.GetLogDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*val = b
		}
	}
}

// DefaultAppConfig is used when no config file is found.
var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "PriceChecker",
		Location: "Local",
		Workdir:  defaultWorkdir(),
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "",
	},
	Mock: MockConfig{
		Addr: "127.0.0.1:8000",
	},
}

func defaultWorkdir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".pricechecker")
	}
	return filepath.Join(os.TempDir(), "pricechecker")
}

// LoadConfig reads cfile, or the first of pricechecker.yml and
// /etc/pricechecker.yml that exists, then applies environment overrides.
// Missing files fall back to DefaultAppConfig.
func LoadConfig(cfile string) (*AppConfig, error) {
	if cfile == "" {
		cfile = "pricechecker.yml"
	}
	if !fileExists(cfile) {
		cfile = "/etc/pricechecker.yml"
	}

	cfg := *DefaultAppConfig
	if fileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	setEnvValue("PRICECHECKER_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("PRICECHECKER_DEBUG", &cfg.System.Debug)
	setEnvValue("PRICECHECKER_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvValue("PRICECHECKER_MOCK_ADDR", &cfg.Mock.Addr)
	setEnvValue("PRICECHECKER_MOCK_APIKEY", &cfg.Mock.ApiKey)

	if cfg.Logger.FileEnable && cfg.Logger.Filename == "" {
		cfg.Logger.Filename = path.Join(cfg.GetLogDir(), "pricechecker.log")
	}
	cfg.Logger.Mode = strings.ToLower(cfg.Logger.Mode)

	if err := cfg.initDirs(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func fileExists(file string) bool {
	info, err := os.Stat(file)
	return err == nil && !info.IsDir()
}
