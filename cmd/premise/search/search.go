// Package searchcmder provides the `premise search` CLI command.
package searchcmder

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/premiselab/premise/pkg/config"
	embeddingutils "github.com/premiselab/premise/pkg/embeddings/utils"
	"github.com/premiselab/premise/pkg/logger"
	"github.com/premiselab/premise/pkg/vector"
	"github.com/premiselab/premise/pkg/vector/sqlitevec"
)

var (
	rankStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	scoreStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	nameStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	conclusionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const searchLongDesc string = `Search the sqlite-vec mirror for theorems near a query.

Embeds the query text through the configured predictor and runs a nearest
neighbor search over a mirror database produced by premise embed --mirror.
Results are ranked by similarity and printed with their stored conclusions.

Use --quiet to output only theorem names, one per line, for piping into
other tools.

Examples:
  premise search "(v A x)"
  premise search "(v A x)" --vector-db premise.db --top 10
  premise search "(v A x)" --quiet`

const searchShortDesc string = "Search the sqlite-vec mirror for similar theorems"

type searchCommander struct {
	query string

	vectorDB string
	topK     int
	quiet    bool

	embeddingProvider string
	embeddingTarget   string
	embeddingModel    string

	debug  bool
	logger *zap.Logger
}

// NewSearchCmd creates the search cobra command.
func NewSearchCmd() *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed("vector-db") && cfg.VectorStore.Target != "" {
				cmder.vectorDB = cfg.VectorStore.Target
			}
			if !cmd.Flags().Changed("embedding-provider") {
				cmder.embeddingProvider = cfg.Embedding.Provider
			}
			if !cmd.Flags().Changed("embedding-target") {
				cmder.embeddingTarget = cfg.Embedding.Target
			}
			if !cmd.Flags().Changed("embedding-model") {
				cmder.embeddingModel = cfg.Embedding.Model
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.query = args[0]

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			cmder.logger = logger.NewLogger(cmder.debug)
			defer func() { _ = cmder.logger.Sync() }()

			return cmder.run(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cmder.vectorDB, "vector-db", "premise.db", "Path to the sqlite-vec mirror database")
	cmd.Flags().IntVarP(&cmder.topK, "top", "t", 5, "Number of nearest theorems to print")
	cmd.Flags().BoolVarP(&cmder.quiet, "quiet", "q", false, "Output only theorem names, one per line")
	cmd.Flags().StringVar(&cmder.embeddingProvider, "embedding-provider", "ollama", "Embedding provider")
	cmd.Flags().StringVar(&cmder.embeddingTarget, "embedding-target", "", "Embedding provider URL")
	cmd.Flags().StringVar(&cmder.embeddingModel, "embedding-model", "", "Embedding model name")

	return cmd
}

func (c *searchCommander) run(ctx context.Context, out io.Writer) error {
	predictor, err := embeddingutils.NewPredictor(&embeddingutils.NewPredictorOpts{
		ProviderType: c.embeddingProvider,
		TargetURL:    c.embeddingTarget,
		Model:        c.embeddingModel,
	})
	if err != nil {
		return fmt.Errorf("creating predictor: %w", err)
	}
	defer func() { _ = predictor.Close() }()

	goalEmbs, err := predictor.BatchGoalEmbedding(ctx, []string{c.query})
	if err != nil {
		return fmt.Errorf("embedding query: %w", err)
	}

	driver, err := sqlitevec.NewDriver(sqlitevec.Config{
		DBPath:     c.vectorDB,
		Dimensions: uint(len(goalEmbs[0])),
	}, c.logger)
	if err != nil {
		return fmt.Errorf("opening sqlite-vec mirror: %w", err)
	}
	defer func() { _ = driver.Close() }()

	return c.searchMirror(ctx, driver, goalEmbs[0], out)
}

// searchMirror runs the nearest neighbor query and renders the results.
func (c *searchCommander) searchMirror(ctx context.Context, driver vector.Driver, goal []float32, out io.Writer) error {
	results, err := driver.Query(ctx, goal, c.topK)
	if err != nil {
		return fmt.Errorf("querying mirror: %w", err)
	}

	if c.quiet {
		for _, r := range results {
			fmt.Fprintln(out, r.Document.ID)
		}
		return nil
	}

	if len(results) == 0 {
		fmt.Fprintln(out, dimStyle.Render("no theorems found"))
		return nil
	}

	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d nearest theorems", len(results))))
	for rank, r := range results {
		fmt.Fprintf(out, "%s %s %s\n    %s\n",
			rankStyle.Render(fmt.Sprintf("%2d.", rank+1)),
			nameStyle.Render(r.Document.ID),
			scoreStyle.Render(fmt.Sprintf("score=%.4f", r.Score)),
			conclusionStyle.Render(r.Document.Conclusion),
		)
	}

	return nil
}
