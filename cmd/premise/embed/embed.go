// Package embedcmder provides the `premise embed` CLI command.
package embedcmder

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/premiselab/premise/pkg/config"
	embeddingutils "github.com/premiselab/premise/pkg/embeddings/utils"
	"github.com/premiselab/premise/pkg/logger"
	"github.com/premiselab/premise/pkg/store"
	"github.com/premiselab/premise/pkg/theorem"
	"github.com/premiselab/premise/pkg/vector"
	"github.com/premiselab/premise/pkg/vector/sqlitevec"
)

const embedLongDesc string = `Compute embeddings for a theorem database and persist them.

Loads the theorem database, normalizes each conclusion, embeds the whole
corpus through the configured predictor, and writes the matrix to the output
path. The output path may carry a shard suffix (e.g. embeddings.emb-000-of-002)
when the caller is assembling a sharded layout; each invocation writes the full
matrix to exactly one file.

Examples:
  premise embed theorems.json --out embeddings.emb
  premise embed theorems.json --out embeddings.emb --mirror --vector-db premise.db
  premise embed theorems.json --out shard.emb-000-of-002 --embedding-model all-minilm`

const embedShortDesc string = "Compute and persist theorem embeddings"

type embedCommander struct {
	dbPath string
	out    string

	embeddingProvider string
	embeddingTarget   string
	embeddingModel    string

	mirror   bool
	vectorDB string

	debug  bool
	logger *zap.Logger
}

// NewEmbedCmd creates the embed cobra command.
func NewEmbedCmd() *cobra.Command {
	cmder := &embedCommander{}

	cmd := &cobra.Command{
		Use:   "embed <database>",
		Short: embedShortDesc,
		Long:  embedLongDesc,
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

			if !cmd.Flags().Changed("embedding-provider") {
				cmder.embeddingProvider = cfg.Embedding.Provider
			}
			if !cmd.Flags().Changed("embedding-target") {
				cmder.embeddingTarget = cfg.Embedding.Target
			}
			if !cmd.Flags().Changed("embedding-model") {
				cmder.embeddingModel = cfg.Embedding.Model
			}
			if !cmd.Flags().Changed("out") {
				cmder.out = cfg.Store.EmbeddingsPath
			}
			if !cmd.Flags().Changed("vector-db") && cfg.VectorStore.Target != "" {
				cmder.vectorDB = cfg.VectorStore.Target
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.dbPath = args[0]

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			cmder.logger = logger.NewLogger(cmder.debug)
			defer func() { _ = cmder.logger.Sync() }()

			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cmder.out, "out", "o", "embeddings.emb", "Output path for the embedding matrix")
	cmd.Flags().StringVar(&cmder.embeddingProvider, "embedding-provider", "ollama", "Embedding provider")
	cmd.Flags().StringVar(&cmder.embeddingTarget, "embedding-target", "", "Embedding provider URL")
	cmd.Flags().StringVar(&cmder.embeddingModel, "embedding-model", "", "Embedding model name")
	cmd.Flags().BoolVar(&cmder.mirror, "mirror", false, "Also mirror embeddings into a sqlite-vec database")
	cmd.Flags().StringVar(&cmder.vectorDB, "vector-db", "premise.db", "Path to the sqlite-vec mirror database")

	return cmd
}

func (c *embedCommander) run(ctx context.Context) error {
	predictor, err := embeddingutils.NewPredictor(&embeddingutils.NewPredictorOpts{
		ProviderType: c.embeddingProvider,
		TargetURL:    c.embeddingTarget,
		Model:        c.embeddingModel,
	})
	if err != nil {
		return fmt.Errorf("creating predictor: %w", err)
	}
	defer func() { _ = predictor.Close() }()

	db, err := theorem.LoadDatabaseFromFile(c.dbPath)
	if err != nil {
		return err
	}

	s := store.New(predictor, c.logger)
	if err := s.ComputeFromDatabase(ctx, db); err != nil {
		return err
	}

	if err := s.SaveEmbeddings(c.out); err != nil {
		return err
	}

	c.logger.Info("saved theorem embeddings",
		zap.String("database", c.dbPath),
		zap.String("out", c.out),
		zap.Int("theorems", len(db.Theorems)),
	)

	if !c.mirror {
		return nil
	}

	matrix := s.Embeddings()
	if len(matrix) == 0 {
		return nil
	}

	driver, err := sqlitevec.NewDriver(sqlitevec.Config{
		DBPath:     c.vectorDB,
		Dimensions: uint(len(matrix[0])),
	}, c.logger)
	if err != nil {
		return fmt.Errorf("opening sqlite-vec mirror: %w", err)
	}
	defer func() { _ = driver.Close() }()

	return c.mirrorEmbeddings(ctx, driver, db, matrix)
}

// mirrorEmbeddings copies the computed matrix into the vector database so the
// corpus can be queried without re-reading matrix files.
func (c *embedCommander) mirrorEmbeddings(ctx context.Context, driver vector.Driver, db *theorem.Database, matrix [][]float32) error {
	docs := make([]vector.Document, len(db.Theorems))
	for i, thm := range db.Theorems {
		id := thm.Name
		if id == "" {
			id = "thm-" + strconv.Itoa(i)
		}
		docs[i] = vector.Document{
			ID:         id,
			Conclusion: theorem.Normalize(thm).Conclusion,
			Embedding:  matrix[i],
		}
	}

	if err := driver.Add(ctx, docs); err != nil {
		return fmt.Errorf("mirroring embeddings: %w", err)
	}

	c.logger.Info("mirrored embeddings to sqlite-vec",
		zap.String("vector_db", c.vectorDB),
		zap.Int("theorems", len(docs)),
	)

	return nil
}
