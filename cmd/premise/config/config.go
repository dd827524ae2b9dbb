// Package configcmder provides the config command for managing persistent
// premise configuration stored in the .premise/ directory.
package configcmder

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
)

const configLongDesc string = `Manage persistent premise configuration.

Configuration is stored as config.toml in the .premise/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  database.path, store.embeddings_path,
  embedding.provider, embedding.target, embedding.model, embedding.dimensions,
  vector_store.provider, vector_store.target

Use subcommands to get, set, or list configuration values:
  premise config set <key> <value>    Set a configuration value
  premise config get <key>            Get a configuration value
  premise config list                 List all configuration values

Examples:
  premise config set embedding.model nomic-embed-text
  premise config set store.embeddings_path corpus/embeddings.emb
  premise config get embedding.model
  premise config list`

const configShortDesc string = "Manage persistent premise configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
