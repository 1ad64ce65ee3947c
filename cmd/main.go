package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"churnpredict/churn"
	"churnpredict/config"
	"churnpredict/ml"
)

const defaultConfigPath = "config.yaml"

// app holds the state shared by every subcommand once the config is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "churnpredict",
		Short:             "Churn risk form backed by a pre-trained classifier",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "path to the YAML config file")
	root.AddCommand(a.newServeCmd(), a.newScoreCmd(), a.newSchemaCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	path := resolveConfigPath(a.configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	// Relative paths in the parent's config are relative to the parent
	if path == filepath.Join("..", defaultConfigPath) {
		rebasePaths(cfg, "..")
	}
	logger, err := config.InitLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

// resolveConfigPath looks for the default config in the parent directory
// when run from cmd/.
func resolveConfigPath(path string) string {
	if path != defaultConfigPath {
		return path
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if _, err := os.Stat(filepath.Join("..", path)); err == nil {
			return filepath.Join("..", path)
		}
	}
	return path
}

func rebasePaths(cfg *config.Config, dir string) {
	for _, p := range []*string{&cfg.Model.Path, &cfg.Model.SchemaPath, &cfg.Log.File} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// loadPredictor reads the model and schema once. Any failure is fatal to the
// calling command.
func (a *app) loadPredictor() (*churn.Predictor, error) {
	loader := ml.NewLoader(ml.LoaderConfig{
		ModelType:  a.cfg.Model.Type,
		ModelPath:  a.cfg.Model.Path,
		SchemaPath: a.cfg.Model.SchemaPath,
	})
	artifact, err := loader.Load()
	if err != nil {
		a.logger.Error("model load failed",
			zap.String("model_path", a.cfg.Model.Path),
			zap.String("schema_path", a.cfg.Model.SchemaPath),
			zap.Error(err),
		)
		return nil, err
	}
	fields := []zap.Field{
		zap.String("model", artifact.Model.Name()),
		zap.Int("features", artifact.Schema.Len()),
		zap.String("model_path", artifact.ModelPath),
		zap.String("schema_path", artifact.SchemaPath),
	}
	if n, ok := estimatorCount(artifact.Model); ok {
		fields = append(fields, zap.Int("estimators", n))
	}
	a.logger.Info("model loaded", fields...)
	return churn.NewPredictor(artifact, a.logger)
}

// estimatorCount reports the tree count of ensemble models.
func estimatorCount(model ml.Classifier) (int, bool) {
	ensemble, ok := model.(interface{ NumEstimators() int })
	if !ok {
		return 0, false
	}
	return ensemble.NumEstimators(), true
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
