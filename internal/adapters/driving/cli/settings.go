package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `View and change askdocs settings.

Settings are stored in config.toml in the config directory and can be
overridden with ASKDOCS_* environment variables, for example
ASKDOCS_SERVER_PORT=9090 overrides server.port.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting and save the config file.

Keys:
  server.host             listen host for 'askdocs serve'
  server.port             listen port for 'askdocs serve'
  fetch.timeout_seconds   web page fetch timeout
  fetch.rate_per_second   sustained web page fetch rate
  fetch.burst             web page fetches allowed back to back
  history.limit           answers kept in the history
  documents.paths         comma separated files and directories loaded at startup
  log.verbose             debug logging (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	values := settingValues(settings)
	if ok, err := render(cmd, values); ok {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	section := ""
	for _, key := range services.SettingKeys() {
		name, _, _ := strings.Cut(key, ".")
		if name != section {
			if section != "" {
				cmd.Println()
			}
			cmd.Printf("[%s]\n", name)
			section = name
		}
		cmd.Printf("  %s = %s\n", key, values[key])
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	value, ok := settingValues(settings)[args[0]]
	if !ok {
		return fmt.Errorf("unknown setting %q", args[0])
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

// settingValues renders settings keyed by their config key.
func settingValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		services.KeyServerHost:     s.Server.Host,
		services.KeyServerPort:     strconv.Itoa(s.Server.Port),
		services.KeyFetchTimeout:   strconv.Itoa(int(s.Fetch.Timeout.Seconds())),
		services.KeyFetchRate:      strconv.FormatFloat(s.Fetch.RatePerSecond, 'g', -1, 64),
		services.KeyFetchBurst:     strconv.Itoa(s.Fetch.Burst),
		services.KeyHistoryLimit:   strconv.Itoa(s.History.Limit),
		services.KeyDocumentsPaths: strings.Join(s.Documents.Paths, ","),
		services.KeyLogVerbose:     strconv.FormatBool(s.Verbose),
	}
}
