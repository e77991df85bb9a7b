// Command regfeat computes region features of a label image and writes the
// feature table to stdout.
//
//	regfeat -features Area,Perimeter -spacing 0.5 -unit mm labels.png
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/region-features-mcp/internal/config"
	"github.com/ironsheep/region-features-mcp/internal/labelmap"
	"github.com/ironsheep/region-features-mcp/internal/logger"
	"github.com/ironsheep/region-features-mcp/internal/regfeat"
	"github.com/ironsheep/region-features-mcp/internal/regfeat/morpho2d"
	"github.com/ironsheep/region-features-mcp/internal/table"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "regfeat: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	configPath  string
	initConfig  string
	features    string
	labels      string
	unitDisplay string
	spacing     string
	unit        string
	binary      bool
	threshold   int
	format      string
	workers     int
	logLevel    string
	list        bool
	path        string
	set         map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("regfeat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.initConfig, "init-config", "", "Write a default configuration file to this path and exit")
	fs.StringVar(&o.features, "features", "", "Comma separated feature IDs (default from configuration)")
	fs.StringVar(&o.labels, "labels", "", "Comma separated region labels (default: all labels in the image)")
	fs.StringVar(&o.unitDisplay, "unit-display", "", "Unit display policy: none, column_names, new_columns, new_table")
	fs.StringVar(&o.spacing, "spacing", "", "Pixel spacing as 'sx' or 'sx,sy'")
	fs.StringVar(&o.unit, "unit", "", "Length unit name, e.g. mm")
	fs.BoolVar(&o.binary, "binary", false, "Threshold the image into a single region instead of reading labels")
	fs.IntVar(&o.threshold, "threshold", -1, "Grey level for -binary (default from configuration)")
	fs.StringVar(&o.format, "format", "", "Output format: csv or json (default from configuration)")
	fs.IntVar(&o.workers, "workers", 0, "Goroutines used by the histogram sweep (default from configuration)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	fs.BoolVar(&o.list, "list", false, "List the available features and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: regfeat [options] <label-image>")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.initConfig == "" && !o.list {
		if fs.NArg() != 1 {
			fs.Usage()
			return nil, fmt.Errorf("expected one label image, got %d arguments", fs.NArg())
		}
		o.path = fs.Arg(0)
	}
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if o.initConfig != "" {
		if err := config.CreateDefaultConfigFile(o.initConfig); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Default configuration written to %s\n", o.initConfig)
		return nil
	}

	reg := morpho2d.NewRegistry()
	if o.list {
		for _, e := range reg.Entries() {
			fmt.Fprintf(stdout, "%-24s %s\n", e.ID, e.Description)
		}
		return nil
	}

	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	if err := o.apply(cfg); err != nil {
		return err
	}

	level := cfg.Log.Level
	if o.set["log-level"] {
		level = o.logLevel
	}
	log := logger.NewConsole(stderr, logger.ParseLevel(level), "regfeat")

	policy, err := cfg.UnitDisplay()
	if err != nil {
		return err
	}

	cache := labelmap.NewCache()
	var m *labelmap.LabelMap
	if o.binary {
		m, err = cache.Mask(o.path, cfg.Analysis.MaskThreshold)
	} else {
		m, err = cache.LabelMap(o.path)
	}
	if err != nil {
		return err
	}
	if m, err = m.WithCalibration(cfg.Calibration); err != nil {
		return err
	}

	labels, err := parseInts(o.labels)
	if err != nil {
		return fmt.Errorf("invalid -labels: %w", err)
	}

	start := time.Now()
	features, units, err := morpho2d.Measure(reg, m, labels, cfg.FeatureIDs(),
		regfeat.WithUnitDisplay(policy),
		regfeat.WithWorkers(cfg.Analysis.Workers),
		regfeat.WithListener(regfeat.NewLogListener(log)),
	)
	if err != nil {
		return err
	}
	log.Info().
		Str("path", o.path).
		Int("regions", features.RowCount()).
		Int("columns", features.ColumnCount()).
		Dur("elapsed", time.Since(start)).
		Msg("features computed")

	return writeTables(stdout, cfg.Output.Format, features, units, policy)
}

// apply overrides cfg with the flags given on the command line.
func (o *options) apply(cfg *config.Config) error {
	if o.set["features"] {
		cfg.Analysis.Features = splitList(o.features)
	}
	if o.set["unit-display"] {
		cfg.Analysis.UnitDisplay = o.unitDisplay
	}
	if o.set["workers"] {
		cfg.Analysis.Workers = o.workers
	}
	if o.set["format"] {
		cfg.Output.Format = o.format
	}
	if o.set["threshold"] {
		if o.threshold < 0 || o.threshold > 255 {
			return fmt.Errorf("-threshold must be within 0-255, got %d", o.threshold)
		}
		cfg.Analysis.MaskThreshold = uint8(o.threshold)
	}
	if o.set["spacing"] {
		sx, sy, err := parseSpacing(o.spacing)
		if err != nil {
			return err
		}
		cfg.Calibration.X.Spacing = sx
		cfg.Calibration.Y.Spacing = sy
	}
	if o.set["unit"] {
		cfg.Calibration.X.Unit = o.unit
		cfg.Calibration.Y.Unit = o.unit
	}
	return cfg.Validate()
}

func writeTables(w io.Writer, format string, features, units *table.Table, policy regfeat.UnitDisplay) error {
	switch format {
	case "json":
		out := map[string]*table.Table{"features": features}
		if policy == regfeat.UnitsNewTable {
			out["units"] = units
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "csv":
		if err := features.WriteCSV(w); err != nil {
			return err
		}
		if policy == regfeat.UnitsNewTable {
			fmt.Fprintln(w)
			return units.WriteCSV(w)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseInts parses a comma separated list. An empty string yields nil.
func parseInts(s string) ([]int, error) {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseSpacing parses "sx" or "sx,sy".
func parseSpacing(s string) (float64, float64, error) {
	parts := splitList(s)
	if len(parts) != 1 && len(parts) != 2 {
		return 0, 0, fmt.Errorf("-spacing wants 'sx' or 'sx,sy', got %q", s)
	}
	sx, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -spacing: %w", err)
	}
	sy := sx
	if len(parts) == 2 {
		if sy, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return 0, 0, fmt.Errorf("invalid -spacing: %w", err)
		}
	}
	return sx, sy, nil
}
