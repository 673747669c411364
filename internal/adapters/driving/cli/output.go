package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// render writes v in the selected structured format. It reports false for
// text output, leaving the caller to print its own layout.
func render(cmd *cobra.Command, v any) (bool, error) {
	switch output {
	case "", formatText:
		return false, nil
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to encode JSON: %w", err)
		}
		cmd.Println(string(data))
		return true, nil
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("failed to encode YAML: %w", err)
		}
		cmd.Print(string(data))
		return true, nil
	}
	return true, fmt.Errorf("unknown output format %q (use text, json or yaml)", output)
}
