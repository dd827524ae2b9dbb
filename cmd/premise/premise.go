// Package premisecmder
package premisecmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/premiselab/premise/cmd/premise/config"
	embedcmder "github.com/premiselab/premise/cmd/premise/embed"
	scorecmder "github.com/premiselab/premise/cmd/premise/score"
	searchcmder "github.com/premiselab/premise/cmd/premise/search"
	versioncmder "github.com/premiselab/premise/cmd/version"
)

const premiseLongDesc string = `Premise caches theorem embeddings for premise selection.

Embed a theorem database and score it against proof goals:
  premise embed     Compute and persist embeddings for a theorem database
  premise score     Score stored embeddings against a proof goal
  premise search    Search the sqlite-vec mirror for similar theorems
  premise config    Manage persistent premise configuration`

const premiseShortDesc string = "Premise - Theorem Embedding Cache"

func NewPremiseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "premise",
		Short: premiseShortDesc,
		Long:  premiseLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .premise/ config directory")

	// Add subcommands
	cmd.AddCommand(embedcmder.NewEmbedCmd())
	cmd.AddCommand(scorecmder.NewScoreCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
