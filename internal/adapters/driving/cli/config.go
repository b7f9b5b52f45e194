package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/staticfield/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Read and write keys in config.toml.

Known keys:
  index.static            Static fields, e.g. "collection:news,lang:en fr"
  index.static.fieldsep   Delimiter between entries (default ",")
  index.static.keysep     Delimiter between name and values (default ":")
  index.static.valuesep   Delimiter between values (default " ")
  indexingfilter.order    Comma-separated filter names (default "basic,static")
  storage.backend         sqlite or memory (default sqlite)
  storage.dir             Data directory (default ~/.staticfield/data)
  log.format              text or json (default text)
  index.parallelism       Sources indexed at once (default 4)`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Remove a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	val, ok := configStore.Get(key)
	if !ok {
		return fmt.Errorf("key not set: %s", key)
	}

	cmd.Println(formatConfigValue(val))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	val, err := parseConfigValue(key, raw)
	if err != nil {
		return err
	}

	if err := configStore.Set(key, val); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, formatConfigValue(val))
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	if _, ok := configStore.Get(key); !ok {
		return fmt.Errorf("key not set: %s", key)
	}
	if err := configStore.Unset(key); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	cmd.Printf("Unset %s\n", key)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	keys := configStore.Keys()
	if len(keys) == 0 {
		cmd.Printf("No configuration set (%s)\n", configStore.Path())
		return nil
	}

	cmd.Printf("%s\n", styled(cmd, dimStyle, "# "+configStore.Path()))
	for _, key := range keys {
		val, _ := configStore.Get(key)
		cmd.Printf("%s = %s\n", styled(cmd, nameStyle, key), formatConfigValue(val))
	}
	return nil
}

// parseConfigValue converts a CLI string to the stored type for known keys.
// Unknown keys are stored as strings.
func parseConfigValue(key, raw string) (any, error) {
	switch key {
	case domain.KeyIndexParallelism:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return n, nil

	case domain.KeyStorageBackend:
		if !domain.StorageBackend(raw).IsValid() {
			return nil, fmt.Errorf("%w: %s must be sqlite or memory", domain.ErrInvalidInput, key)
		}
		return raw, nil

	case domain.KeyLogFormat:
		if raw != "text" && raw != "json" {
			return nil, fmt.Errorf("%w: %s must be text or json", domain.ErrInvalidInput, key)
		}
		return raw, nil

	case domain.KeyFilterOrder:
		var names []string
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: %s needs at least one filter", domain.ErrInvalidInput, key)
		}
		return names, nil

	default:
		return raw, nil
	}
}

// formatConfigValue renders a stored value for display. Strings are quoted
// so leading or trailing whitespace in delimiters stays visible.
func formatConfigValue(val any) string {
	switch v := val.(type) {
	case string:
		return strconv.Quote(v)
	case []string:
		return strconv.Quote(strings.Join(v, ","))
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strconv.Quote(strings.Join(parts, ","))
	default:
		return fmt.Sprint(v)
	}
}
