// Package analysis drives the sequential pipeline: load, structural
// metrics, centrality, community detection, report.
package analysis

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages pipeline configuration through Viper.
type Config struct {
	v *viper.Viper
}

// NewConfig creates a configuration with production defaults.
func NewConfig() *Config {
	v := viper.New()

	v.SetDefault("pagerank.damping", 0.85)
	v.SetDefault("pagerank.max_iterations", 50)
	v.SetDefault("pagerank.tolerance", 1e-6)

	v.SetDefault("louvain.max_levels", 10)
	v.SetDefault("louvain.max_iterations", 100)
	v.SetDefault("louvain.min_modularity_gain", 1e-7)
	v.SetDefault("louvain.random_seed", 42)

	v.SetDefault("ranking.top_k", 10)

	// 0 disables the memory guard.
	v.SetDefault("limits.max_memory_mb", 0)

	v.SetDefault("logging.level", "info")

	return &Config{v: v}
}

// LoadFromFile merges configuration from a file over the defaults.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

func (c *Config) PageRankDamping() float64   { return c.v.GetFloat64("pagerank.damping") }
func (c *Config) PageRankMaxIterations() int { return c.v.GetInt("pagerank.max_iterations") }
func (c *Config) PageRankTolerance() float64 { return c.v.GetFloat64("pagerank.tolerance") }

func (c *Config) LouvainMaxLevels() int         { return c.v.GetInt("louvain.max_levels") }
func (c *Config) LouvainMaxIterations() int     { return c.v.GetInt("louvain.max_iterations") }
func (c *Config) LouvainMinModularity() float64 { return c.v.GetFloat64("louvain.min_modularity_gain") }
func (c *Config) LouvainRandomSeed() int64      { return c.v.GetInt64("louvain.random_seed") }

func (c *Config) RankingTopK() int { return c.v.GetInt("ranking.top_k") }

func (c *Config) MaxMemoryMB() int64 { return c.v.GetInt64("limits.max_memory_mb") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

// Set overrides a configuration key.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// CreateLogger builds a console zerolog logger at the configured level.
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "graph-analysis").Logger()
}
