package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/TrevorS/hclust"
	"github.com/TrevorS/hclust/internal/config"
)

// result is what the cluster command prints.
type result struct {
	hclust.Dendrogram `yaml:",inline"`

	// Groups is set when --cut is given.
	Groups []int `json:"groups,omitempty" yaml:"groups,omitempty"`
}

func writeResult(w io.Writer, format string, res result) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return errors.Wrap(err, "failed to marshal dendrogram to JSON")
		}
		return nil

	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return errors.Wrap(err, "failed to marshal dendrogram to YAML")
		}
		return errors.Wrap(enc.Close(), "failed to flush YAML")

	case config.FormatTable:
		return writeTable(w, res)
	}
	return errors.Newf("unsupported format: %s (supported: json, yaml, table)", format)
}

func writeTable(w io.Writer, res result) error {
	data := pterm.TableData{{"step", "left", "right", "height"}}
	for i, row := range res.Merge {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(row[0]),
			strconv.Itoa(row[1]),
			strconv.FormatFloat(res.Height[i], 'g', -1, 64),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render merge table")
	}
	fmt.Fprintln(w, table)
	fmt.Fprintf(w, "order: %v\n", res.Order)
	if res.Groups != nil {
		fmt.Fprintf(w, "groups: %v\n", res.Groups)
	}
	return nil
}
