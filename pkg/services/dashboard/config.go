package dashboard

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/milv-tools/rvu-atlas/pkg/services/dataset"
	"github.com/milv-tools/rvu-atlas/pkg/store/csv"
	"github.com/milv-tools/rvu-atlas/pkg/store/duckdb/exam"
	"github.com/milv-tools/rvu-atlas/pkg/store/excel"
)

type SourceConfig struct {
	Path   string `mapstructure:"path" validate:"required"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Source           SourceConfig `mapstructure:"source"`
	Timezone         string       `mapstructure:"timezone"`
	MaxExclusionRate float64      `mapstructure:"max_exclusion_rate"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// An explicit max_exclusion_rate of 0 is a valid strict setting;
	// only an absent key falls back to the default.
	v.SetDefault("max_exclusion_rate", 1.0)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse dashboard config: %w", err)
	}
	if cfg.Source.Path == "" {
		return nil, fmt.Errorf("config %s: source.path is required", path)
	}
	return &cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// NewSourceReader picks the reader for the configured source. When no
// format is set it is inferred from the file extension.
func NewSourceReader(cfg SourceConfig) (dataset.Reader, error) {
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(cfg.Path), ".")
	}

	switch format {
	case "csv":
		return csv.NewReader(cfg.Path), nil
	case "tsv":
		return csv.NewReader(cfg.Path, csv.WithComma('\t')), nil
	case "xlsx":
		return excel.NewReader(cfg.Path), nil
	case "duckdb", "db":
		return exam.NewReader(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported source format %q", format)
	}
}
