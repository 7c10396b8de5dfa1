package cli

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"
)

// noData marks an absent optional value in human-readable output. Never "0":
// an unrated collection and an average of zero are different facts.
const noData = "—"

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func ratingText(r *int) string {
	if r == nil {
		return noData
	}
	return strconv.Itoa(*r)
}

func avgRatingText(avg *float64) string {
	if avg == nil {
		return noData
	}
	return strconv.FormatFloat(*avg, 'f', 2, 64)
}
