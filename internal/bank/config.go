// Package bank holds the declarative per-bank extraction configuration:
// header keyword sets plus the coercion policies that vary between
// statement layouts. One generic engine consumes these configurations, so
// supporting a new bank is a data change, not new code.
package bank

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/insightdelivered/statement-tabulator/internal/engine"
	"github.com/insightdelivered/statement-tabulator/internal/models"
	"github.com/insightdelivered/statement-tabulator/internal/schema"
)

// Keywords lists the header substrings per logical column, in match
// priority order.
type Keywords struct {
	Date        []string `yaml:"date"`
	Description []string `yaml:"description"`
	Debit       []string `yaml:"debit"`
	Credit      []string `yaml:"credit"`
	Balance     []string `yaml:"balance"`
}

// Header configures header-row qualification.
type Header struct {
	ExtraColumns int  `yaml:"extra_columns,omitempty"`
	Fuzzy        bool `yaml:"fuzzy,omitempty"`
}

// Config is the full declarative strategy for one bank.
type Config struct {
	Bank     string   `yaml:"bank"`
	Name     string   `yaml:"name"`
	Keywords Keywords `yaml:"keywords"`
	Header   Header   `yaml:"header,omitempty"`

	ZeroAsNull         bool `yaml:"zero_as_null,omitempty"`
	FillMissingAmounts bool `yaml:"fill_missing_amounts,omitempty"`
	RequireDate        bool `yaml:"require_date,omitempty"`
}

// KeywordMap converts the configured keywords to the engine's form.
func (c *Config) KeywordMap() engine.KeywordMap {
	return engine.KeywordMap{
		models.ColDate:        c.Keywords.Date,
		models.ColDescription: c.Keywords.Description,
		models.ColDebit:       c.Keywords.Debit,
		models.ColCredit:      c.Keywords.Credit,
		models.ColBalance:     c.Keywords.Balance,
	}
}

// Options assembles the engine options for this bank.
func (c *Config) Options(log *slog.Logger) engine.Options {
	return engine.Options{
		Keywords: c.KeywordMap(),
		Header: engine.HeaderRule{
			ExtraColumns: c.Header.ExtraColumns,
			Fuzzy:        c.Header.Fuzzy,
		},
		Policy: engine.Policy{
			ZeroAsNull:         c.ZeroAsNull,
			FillMissingAmounts: c.FillMissingAmounts,
			RequireDate:        c.RequireDate,
		},
		Schema: schema.Default(),
		Logger: log,
	}
}

// Load reads a bank configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bank config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing bank config: %w", err)
	}
	if cfg.Bank == "" {
		return nil, fmt.Errorf("bank config %q: missing bank key", path)
	}
	return &cfg, nil
}

// Save writes a bank configuration to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling bank config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing bank config: %w", err)
	}
	return nil
}
