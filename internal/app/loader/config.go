package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/heartmarshall/trivia-loader/internal/domain"
)

// Config holds loader settings.
type Config struct {
	DataDir     string `yaml:"data_dir"     env:"LOADER_DATA_DIR"     env-default:"trivia_dataset/seasons"`
	FilePattern string `yaml:"file_pattern" env:"LOADER_FILE_PATTERN" env-default:"season%d.tsv"`
	FirstSeason int    `yaml:"first_season" env:"LOADER_FIRST_SEASON" env-default:"1"`
	MaxSeasons  int    `yaml:"max_seasons"  env:"LOADER_MAX_SEASONS"  env-default:"1"`
	BatchSize   int    `yaml:"batch_size"   env:"LOADER_BATCH_SIZE"   env-default:"500"`
	Purge       bool   `yaml:"purge"        env:"LOADER_PURGE"`
	DryRun      bool   `yaml:"dry_run"      env:"LOADER_DRY_RUN"`
}

// LoadConfig reads loader configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("loader config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("loader config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("loader config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loader config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings that cleanenv cannot express with tags.
func (c *Config) Validate() error {
	_, hi := domain.USmallInt.Bounds()
	if c.FirstSeason < 0 || int64(c.FirstSeason) > hi {
		return fmt.Errorf("first_season must be between 0 and %d (got %d)", hi, c.FirstSeason)
	}
	if c.MaxSeasons < 0 {
		return fmt.Errorf("max_seasons must be >= 0 (got %d)", c.MaxSeasons)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if strings.Count(c.FilePattern, "%d") != 1 {
		return fmt.Errorf("file_pattern must contain exactly one %%d (got %q)", c.FilePattern)
	}
	return nil
}

// SeasonPath returns the path of the file holding the given season.
func (c *Config) SeasonPath(seasonNumber int) string {
	return filepath.Join(c.DataDir, fmt.Sprintf(c.FilePattern, seasonNumber))
}
