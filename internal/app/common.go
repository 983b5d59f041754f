package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/pareto/internal/config"
	"github.com/blackwell-systems/pareto/internal/input"
	"github.com/blackwell-systems/pareto/internal/output"
	"github.com/blackwell-systems/pareto/internal/pareto"
	"github.com/blackwell-systems/pareto/internal/store"
)

var errNoSource = errors.New("no data: pass label=frequency pairs, --file, or --db with --query")

// loadConfig reads the config file selected by --config or the default
// lookup order.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Path(configPath))
	if err != nil {
		return nil, err
	}
	if cfg.NoColor != nil && *cfg.NoColor {
		output.DisableColor()
	}
	return cfg, nil
}

// loadSeries reads pairs from the single data source the user selected.
func loadSeries(args []string) (input.Series, error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if filePath != "" {
		sources++
	}
	if dbPath != "" || dbQuery != "" {
		sources++
	}

	switch {
	case sources == 0:
		return input.Series{}, errNoSource
	case sources > 1:
		return input.Series{}, fmt.Errorf("use only one data source: arguments, --file, or --db")
	}

	switch {
	case len(args) > 0:
		return input.ParsePairs(args)
	case filePath != "":
		return input.Load(filePath)
	default:
		return loadFromDB()
	}
}

func loadFromDB() (input.Series, error) {
	if dbPath == "" || dbQuery == "" {
		return input.Series{}, fmt.Errorf("--db and --query must be used together")
	}

	st, err := store.New(dbPath)
	if err != nil {
		return input.Series{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	return st.LoadSeries(dbQuery)
}

// loadPareto builds the Pareto value for a command. The --label flag wins
// over the config file's label.
func loadPareto(args []string, cfg *config.Config) (*pareto.Pareto, error) {
	s, err := loadSeries(args)
	if err != nil {
		return nil, err
	}

	l := label
	if l == "" {
		l = cfg.Label
	}
	return pareto.New(s.Items, s.Frequencies, l), nil
}
