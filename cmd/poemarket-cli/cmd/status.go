package cmd

import (
	"net/http"

	"poemarket-backend/cmd/poemarket-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Prints service status and mod database counts.",
	Run: func(cmd *cobra.Command, args []string) {
		var body struct {
			Status string `json:"status"`
			Mods   struct {
				TotalMods   int64 `json:"total_mods"`
				PrefixCount int64 `json:"prefix_count"`
				SuffixCount int64 `json:"suffix_count"`
			} `json:"mods"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetResult(&body).
			Get("/api/status")
		if err != nil {
			fail(err)
		}
		if res.StatusCode() != http.StatusOK {
			failStatus(res)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Status", "Total Mods", "Prefixes", "Suffixes"})
		t.AppendRow(table.Row{
			body.Status,
			body.Mods.TotalMods,
			body.Mods.PrefixCount,
			body.Mods.SuffixCount,
		})
		t.Render()
	},
}
