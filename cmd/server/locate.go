package main

import (
	"Bodi/internal/geo"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func locateCmd() *cobra.Command {
	var city, neighborhood string
	cmd := &cobra.Command{
		Use:   "locate [query]",
		Short: "Inspect the location knowledge base",
		Long: "Without flags, extract the location context of a free-text query.\n" +
			"With --city and --neighborhood, show that neighborhood and what is nearby.\n" +
			"With only --city, list its neighborhoods.",
		Example: "  bodi locate \"2 bedroom near UNILAG\"\n  bodi locate --city Lagos --neighborhood Yaba",
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := geo.Load()
			if err != nil {
				return err
			}

			var result any
			switch {
			case city != "" && neighborhood != "":
				info, found := kb.NeighborhoodInfo(neighborhood, city)
				result = map[string]any{
					"city":         city,
					"neighborhood": neighborhood,
					"found":        found,
					"info":         info,
					"nearby":       kb.NearbyNeighborhoods(neighborhood, city),
				}
			case city != "":
				names := kb.Neighborhoods(city)
				if len(names) == 0 {
					return fmt.Errorf("unknown city %q, expected one of %s", city, strings.Join(kb.Cities(), ", "))
				}
				result = map[string]any{"city": city, "neighborhoods": names}
			case len(args) > 0:
				result = kb.ExtractContext(strings.Join(args, " "))
			default:
				result = map[string]any{"cities": kb.Cities()}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "city name")
	cmd.Flags().StringVar(&neighborhood, "neighborhood", "", "neighborhood name (needs --city)")
	return cmd
}
