package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"poemarket-backend/cmd/poemarket-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var buildsLimit int64

func init() {
	buildsCmd.Flags().Int64Var(&buildsLimit, "limit", 100, "maximum number of builds to list")
	rootCmd.AddCommand(buildsCmd)
}

var buildsCmd = &cobra.Command{
	Use:   "builds <league>",
	Short: "Prints stored builds for a league.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var body struct {
			Builds []struct {
				Name           string `json:"name"`
				CharacterClass string `json:"characterClass"`
				Level          *int64 `json:"level"`
				MainSkill      string `json:"mainSkill"`
				Dps            *int64 `json:"dps"`
				Life           *int64 `json:"life"`
			} `json:"builds"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetQueryParam("limit", strconv.FormatInt(buildsLimit, 10)).
			SetResult(&body).
			Get(fmt.Sprintf("/api/builds/%s", args[0]))
		if err != nil {
			fail(err)
		}
		if res.StatusCode() != http.StatusOK {
			failStatus(res)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Name", "Class", "Level", "Main Skill", "DPS", "Life"})
		for _, b := range body.Builds {
			t.AppendRow(table.Row{
				b.Name, b.CharacterClass,
				optInt(b.Level), b.MainSkill,
				optInt(b.Dps), optInt(b.Life),
			})
		}
		t.Render()
	},
}

func optInt(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}
