package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churnpredict/churn"
)

func writeConfig(t *testing.T, modelPath string) string {
	t.Helper()
	if modelPath == "" {
		var err error
		modelPath, err = filepath.Abs(filepath.Join("..", "models", "rf_model.json"))
		require.NoError(t, err)
	}
	schemaPath, err := filepath.Abs(filepath.Join("..", "models", "feature_columns.json"))
	require.NoError(t, err)

	body := fmt.Sprintf("model:\n  type: random_forest\n  path: %q\n  schema_path: %q\nlog:\n  level: error\n", modelPath, schemaPath)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreDefaults(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t, ""), "score")
	require.NoError(t, err)

	// Low label with probability above the campaign threshold
	assert.Contains(t, out, "LOW Churn Risk")
	assert.Contains(t, out, "35.0")
	assert.Contains(t, out, "(Safe)")
	assert.Contains(t, out, "Recommendation: Target for retention campaign")
	assert.Contains(t, out, "  - Offer Premium discount")
}

func TestScoreHighRisk(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t, ""), "score",
		"--age", "20", "--skip-rate", "0.5", "--listening-time", "60")
	require.NoError(t, err)

	assert.Contains(t, out, "HIGH Churn Risk")
	assert.Contains(t, out, "61.7")
	assert.Contains(t, out, "(High Risk)")
}

func TestScoreLowRiskPremium(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t, ""), "score",
		"--subscription", "Premium", "--skip-rate", "0.1", "--offline-listening", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "LOW Churn Risk")
	assert.Contains(t, out, "21.7")
	assert.Contains(t, out, "Recommendation: Monitor engagement")
	assert.NotContains(t, out, "  - ")
}

func TestScoreJSON(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t, ""), "score", "--json")
	require.NoError(t, err)

	var resp struct {
		Label       int              `json:"label"`
		Probability float64          `json:"probability"`
		Assessment  churn.Assessment `json:"assessment"`
		Features    struct {
			Columns []string `json:"columns"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 0, resp.Label)
	assert.InDelta(t, 0.35, resp.Probability, 1e-9)
	assert.True(t, resp.Assessment.Campaign)
	assert.Equal(t, churn.EncodedColumns(), resp.Features.Columns)
}

func TestScoreRejectsInvalidInput(t *testing.T) {
	_, err := run(t, "--config", writeConfig(t, ""), "score", "--age", "70")
	require.Error(t, err)
	assert.True(t, churn.IsInputError(err))

	_, err = run(t, "--config", writeConfig(t, ""), "score", "--country", "ZZ")
	require.Error(t, err)
	assert.True(t, churn.IsInputError(err))
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t, ""), "schema")
	require.NoError(t, err)

	assert.Contains(t, out, "model: random_forest (12 features)")
	assert.Contains(t, out, "estimators: 3\n")
	assert.Contains(t, out, " 0  age\n")
	assert.Contains(t, out, "11  has_ads\n")
}

func TestCommandsFailWithoutModel(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	for _, args := range [][]string{{"serve", "--port", "0"}, {"score"}, {"schema"}} {
		_, err := run(t, append([]string{"--config", writeConfig(t, missing)}, args...)...)
		assert.Error(t, err, args[0])
	}
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: -1\n"), 0o644))

	_, err := run(t, "--config", path, "schema")
	assert.Error(t, err)
}

func TestParentConfigPathsAreRebased(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "models"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cmd"), 0o755))
	for _, name := range []string{"rf_model.json", "feature_columns.json"} {
		payload, err := os.ReadFile(filepath.Join("..", "models", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(root, "models", name), payload, 0o644))
	}
	body := "model:\n  path: models/rf_model.json\n  schema_path: models/feature_columns.json\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, defaultConfigPath), []byte(body), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(filepath.Join(root, "cmd")))
	t.Cleanup(func() { os.Chdir(wd) })

	out, err := run(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "model: random_forest (12 features)")
}
