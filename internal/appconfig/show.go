// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Models Dir:         %s\n", cfg.ModelsPath())
	fmt.Fprintf(out, "  Discovery Set:      %s\n", orDefault(cfg.DiscoverySet, "unique_prototypes"))
	fmt.Fprintf(out, "  Show Non-compliant: %v\n", cfg.ShowNonCompliant)
	fmt.Fprintf(out, "  Hidden Columns:     %s\n", orDefault(strings.Join(cfg.HiddenColumns, ", "), "(defaults)"))
	fmt.Fprintf(out, "  Shown Columns:      %s\n", orDefault(strings.Join(cfg.ShownColumns, ", "), "(defaults)"))
	fmt.Fprintf(out, "  Sort Column:        %s\n", orDefault(cfg.SortColumn, "F1"))
	fmt.Fprintf(out, "  Sort Ascending:     %v\n", cfg.SortAscending)
	fmt.Fprintf(out, "  Debug:              %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:          %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Log File:           %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Server Port:        %s\n", cfg.Port())
	fmt.Fprintf(out, "  CORS Origins:       %s\n", orDefault(strings.Join(cfg.CorsOrigins, ", "), "*"))
	if len(cfg.Downloads) > 0 {
		labels := make([]string, 0, len(cfg.Downloads))
		for label := range cfg.Downloads {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		fmt.Fprintln(out, "  Downloads:")
		for _, label := range labels {
			fmt.Fprintf(out, "    %-6s %s\n", label+":", cfg.Downloads[label])
		}
	}
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
