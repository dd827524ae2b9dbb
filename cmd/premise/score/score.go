// Package scorecmder provides the `premise score` CLI command.
package scorecmder

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/premiselab/premise/pkg/config"
	embeddingutils "github.com/premiselab/premise/pkg/embeddings/utils"
	"github.com/premiselab/premise/pkg/logger"
	"github.com/premiselab/premise/pkg/store"
)

var (
	rankStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	thmStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const scoreLongDesc string = `Score stored theorem embeddings against a proof goal.

Reads a persisted embedding matrix (a single file or a sharded glob pattern),
embeds the goal through the configured predictor, and prints the top-scoring
preceding theorems by matrix position.

Use --theorem-index to restrict scoring to the theorems preceding a corpus
position; by default the whole corpus is scored.

Examples:
  premise score "(v A x)" --embeddings embeddings.emb
  premise score "(v A x)" --embeddings 'embeddings.emb*' --top 10
  premise score "(v A x)" --theorem-index 128`

const scoreShortDesc string = "Score stored embeddings against a proof goal"

type scoreCommander struct {
	goal string

	embeddingsPath string
	theoremIndex   int
	topK           int
	quiet          bool

	embeddingProvider string
	embeddingTarget   string
	embeddingModel    string

	debug  bool
	logger *zap.Logger
}

// NewScoreCmd creates the score cobra command.
func NewScoreCmd() *cobra.Command {
	cmder := &scoreCommander{}

	cmd := &cobra.Command{
		Use:   "score <goal>",
		Short: scoreShortDesc,
		Long:  scoreLongDesc,
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

			if !cmd.Flags().Changed("embeddings") {
				cmder.embeddingsPath = cfg.Store.EmbeddingsPath
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
			cmder.goal = args[0]

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			cmder.logger = logger.NewLogger(cmder.debug)
			defer func() { _ = cmder.logger.Sync() }()

			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.embeddingsPath, "embeddings", "e", "embeddings.emb", "Embedding matrix file or shard glob pattern")
	cmd.Flags().IntVar(&cmder.theoremIndex, "theorem-index", -1, "Score only theorems preceding this corpus position")
	cmd.Flags().IntVarP(&cmder.topK, "top", "t", 5, "Number of top-scoring theorems to print")
	cmd.Flags().BoolVarP(&cmder.quiet, "quiet", "q", false, "Output only theorem positions, one per line")
	cmd.Flags().StringVar(&cmder.embeddingProvider, "embedding-provider", "ollama", "Embedding provider")
	cmd.Flags().StringVar(&cmder.embeddingTarget, "embedding-target", "", "Embedding provider URL")
	cmd.Flags().StringVar(&cmder.embeddingModel, "embedding-model", "", "Embedding model name")

	return cmd
}

func (c *scoreCommander) run(ctx context.Context, cmd *cobra.Command) error {
	predictor, err := embeddingutils.NewPredictor(&embeddingutils.NewPredictorOpts{
		ProviderType: c.embeddingProvider,
		TargetURL:    c.embeddingTarget,
		Model:        c.embeddingModel,
	})
	if err != nil {
		return fmt.Errorf("creating predictor: %w", err)
	}
	defer func() { _ = predictor.Close() }()

	s := store.New(predictor, c.logger)
	if err := s.ReadEmbeddings(c.embeddingsPath); err != nil {
		return err
	}

	goalEmbs, err := predictor.BatchGoalEmbedding(ctx, []string{c.goal})
	if err != nil {
		return fmt.Errorf("embedding goal: %w", err)
	}

	scores, err := s.ScoresForPrecedingTheorems(goalEmbs[0], c.theoremIndex)
	if err != nil {
		return err
	}

	type ranked struct {
		position int
		score    float32
	}
	order := make([]ranked, len(scores))
	for i, score := range scores {
		order[i] = ranked{position: i, score: score}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].score > order[j].score
	})

	topK := c.topK
	if topK > len(order) {
		topK = len(order)
	}

	out := cmd.OutOrStdout()

	if c.quiet {
		for _, r := range order[:topK] {
			fmt.Fprintln(out, r.position)
		}
		return nil
	}

	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("scored %d theorems", len(scores))))
	for rank, r := range order[:topK] {
		fmt.Fprintf(out, "%s %s %s\n",
			rankStyle.Render(fmt.Sprintf("%2d.", rank+1)),
			thmStyle.Render(fmt.Sprintf("theorem %d", r.position)),
			scoreStyle.Render(fmt.Sprintf("score=%.4f", r.score)),
		)
	}

	return nil
}
