// Package config loads the settings of the hclust command from defaults, an
// optional TOML file, HCLUST_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/TrevorS/hclust"
)

// EnvPrefix prefixes every environment variable, e.g. HCLUST_CLUSTER_LINKAGE.
const EnvPrefix = "HCLUST"

// Input kinds accepted by the cluster command.
const (
	InputRows = "rows"
	InputDist = "dist"
)

// Output formats accepted by the cluster command.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

type Config struct {
	Cluster ClusterConfig `mapstructure:"cluster"`
	Input   InputConfig   `mapstructure:"input"`
	Output  OutputConfig  `mapstructure:"output"`
}

type ClusterConfig struct {
	Linkage  string  `mapstructure:"linkage"`
	Distance string  `mapstructure:"distance"`
	P        float64 `mapstructure:"p"`
	Workers  int     `mapstructure:"workers"`
	// Precompute builds the dissimilarity matrix from rows and clusters it
	// with the matrix-update path.
	Precompute bool `mapstructure:"precompute"`
}

type InputConfig struct {
	Kind   string `mapstructure:"kind"`
	Header bool   `mapstructure:"header"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// SetDefaults registers the default of every key.
func SetDefaults(v *viper.Viper) {
	d := hclust.DefaultConfig()
	v.SetDefault("cluster.linkage", string(d.Linkage))
	v.SetDefault("cluster.distance", string(d.Distance))
	v.SetDefault("cluster.p", d.P)
	v.SetDefault("cluster.workers", 0)
	v.SetDefault("cluster.precompute", false)

	v.SetDefault("input.kind", InputRows)
	v.SetDefault("input.header", false)

	v.SetDefault("output.format", FormatJSON)
}

// New returns a viper instance with defaults and environment binding. When
// configFile is non-empty it is read as TOML and must exist.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}
	return v, nil
}

// BindFlags binds each config key to the named flag in fs. Flags missing from
// fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, flag := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s to %s", flag, key)
		}
	}
	return nil
}

// Load unmarshals and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := hclust.ParseLinkage(c.Cluster.Linkage); err != nil {
		return errors.Wrap(err, "cluster.linkage")
	}
	if _, err := hclust.ParseDistance(c.Cluster.Distance); err != nil {
		return errors.Wrap(err, "cluster.distance")
	}
	if c.Cluster.Workers < 0 {
		return errors.Newf("cluster.workers must be >= 0, got %d", c.Cluster.Workers)
	}
	switch c.Input.Kind {
	case InputRows, InputDist:
	default:
		return errors.Newf("input.kind must be %q or %q, got %q", InputRows, InputDist, c.Input.Kind)
	}
	switch c.Output.Format {
	case FormatJSON, FormatYAML, FormatTable:
	default:
		return errors.Newf("output.format must be one of %s, %s, %s; got %q", FormatJSON, FormatYAML, FormatTable, c.Output.Format)
	}
	return nil
}

// Library converts the cluster section to a library Config.
func (c *Config) Library(logger *zap.Logger) hclust.Config {
	// Validate has already accepted both names.
	linkage, _ := hclust.ParseLinkage(c.Cluster.Linkage)
	distance, _ := hclust.ParseDistance(c.Cluster.Distance)
	return hclust.Config{
		Linkage:  linkage,
		Distance: distance,
		P:        c.Cluster.P,
		Workers:  c.Cluster.Workers,
		Logger:   logger,
	}
}
