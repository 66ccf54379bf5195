package main

import (
	"Bodi/internal/generator"
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func datagenCmd() *cobra.Command {
	var (
		total  int
		seed   int64
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "datagen",
		Short: "Generate a synthetic property catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := generator.New(generator.Config{Total: total, Seed: seed}).Generate(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				buf := bufio.NewWriter(f)
				defer buf.Flush()
				w = buf
			}
			if err := generator.WriteCatalog(w, catalog, format); err != nil {
				return err
			}
			if out != "" && out != "-" {
				cmd.PrintErrf("Wrote %d properties to %s\n", len(catalog), out)
			}
			return nil
		},
	}
	def := generator.DefaultConfig()
	cmd.Flags().IntVar(&total, "total", def.Total, "number of listings")
	cmd.Flags().Int64Var(&seed, "seed", def.Seed, "random seed, 0 for a clock seed")
	cmd.Flags().StringVar(&format, "format", generator.FormatJSON, "output format: json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}
