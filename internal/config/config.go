// Package config provides configuration management for the gcp-byoc CLI.
//
// It implements the disciplined Viper pattern where Viper stays contained
// in this package and the rest of the codebase receives explicit Config structs.
// Configuration sources are resolved in this order: flags > env > config file > defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/gcp-byoc-network/internal/deployment"
)

// DefaultCIDR is the subnetwork range used when none is configured.
const DefaultCIDR = "10.0.0.0/16"

// DefaultController is the control plane identity allowed to impersonate the
// installation service account.
const DefaultController = deployment.DefaultController

// Config is the explicit configuration struct
// This is what the rest of the codebase sees
type Config struct {
	Project    string
	Name       string
	Region     string
	CIDR       string
	Controller string
	Gcloud     string
	Verbose    bool
	OutputOnly bool
	Delete     bool
}

// Init initializes viper with defaults and config file paths
func Init() error {
	// Set config file name and type
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config file search paths
	viper.AddConfigPath("$HOME/.gcp-byoc")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("cidr", DefaultCIDR)
	viper.SetDefault("controller-account", DefaultController)
	viper.SetDefault("gcloud", "gcloud")
	viper.SetDefault("verbose", false)
	viper.SetDefault("output-only", false)
	viper.SetDefault("delete", false)

	// Bind environment variables with prefix, BYOC_CONTROLLER_ACCOUNT etc.
	viper.SetEnvPrefix("BYOC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// BindFlag binds a command flag to a configuration key
func BindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("config: bind flag %s: %v", key, err))
	}
}

// Load reads from all sources and returns explicit Config.
// The result is not validated; callers decide which fields their command needs.
func Load() *Config {
	return &Config{
		Project:    viper.GetString("project"),
		Name:       viper.GetString("name"),
		Region:     viper.GetString("region"),
		CIDR:       viper.GetString("cidr"),
		Controller: viper.GetString("controller-account"),
		Gcloud:     viper.GetString("gcloud"),
		Verbose:    viper.GetBool("verbose"),
		OutputOnly: viper.GetBool("output-only"),
		Delete:     viper.GetBool("delete"),
	}
}

// Validate ensures config is sane for a provisioning run
func (c *Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("project is required (--project or BYOC_PROJECT)")
	}

	if c.Name == "" {
		return fmt.Errorf("name is required (--name or BYOC_NAME)")
	}

	if c.OutputOnly && c.Delete {
		return fmt.Errorf("output-only and delete are mutually exclusive")
	}

	if c.Creates() && c.Region == "" {
		return fmt.Errorf("region is required to create a deployment (--region or BYOC_REGION)")
	}

	return nil
}

// Creates reports whether the run creates a deployment
func (c *Config) Creates() bool {
	return !c.OutputOnly && !c.Delete
}

// Display shows current config (for gcp-byoc config)
func Display() string {
	cfg := Load()

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "(not found)"
	}

	return fmt.Sprintf(`Configuration:
  project:            %s
  name:               %s
  region:             %s
  cidr:               %s
  controller-account: %s
  gcloud:             %s

Sources:
  Config file:        %s
  Environment:        BYOC_*
  Flags:              (per command)
`,
		orUnset(cfg.Project),
		orUnset(cfg.Name),
		orUnset(cfg.Region),
		cfg.CIDR,
		cfg.Controller,
		cfg.Gcloud,
		configFile,
	)
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
