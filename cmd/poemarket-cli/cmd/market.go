package cmd

import (
	"fmt"
	"net/http"

	"poemarket-backend/cmd/poemarket-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(marketCmd)
}

var marketCmd = &cobra.Command{
	Use:   "market <league> <category>",
	Short: "Prints a market snapshot for a league and category.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var body struct {
			Lines []struct {
				Name       string   `json:"name"`
				ChaosValue *float64 `json:"chaosValue"`
			} `json:"lines"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetResult(&body).
			Get(fmt.Sprintf("/api/market/%s/%s", args[0], args[1]))
		if err != nil {
			fail(err)
		}
		if res.StatusCode() != http.StatusOK {
			failStatus(res)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Name", "Chaos Value"})
		for _, line := range body.Lines {
			chaos := "-"
			if line.ChaosValue != nil {
				chaos = fmt.Sprintf("%.2f", *line.ChaosValue)
			}
			t.AppendRow(table.Row{line.Name, chaos})
		}
		t.Render()
	},
}
