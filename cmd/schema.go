package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the model type and its feature columns in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			predictor, err := a.loadPredictor()
			if err != nil {
				return err
			}
			artifact := predictor.Artifact()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "model: %s (%d features)\n", artifact.Model.Name(), artifact.Model.NumFeatures())
			if n, ok := estimatorCount(artifact.Model); ok {
				fmt.Fprintf(out, "estimators: %d\n", n)
			}
			for i, column := range artifact.Schema.Columns() {
				fmt.Fprintf(out, "%2d  %s\n", i, column)
			}
			return nil
		},
	}
}
