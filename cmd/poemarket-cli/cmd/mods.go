package cmd

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"poemarket-backend/cmd/poemarket-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	modsKind    string
	modsMinIlvl int64
	modsMaxIlvl int64
	modsSearch  string
)

func init() {
	modsCmd.Flags().StringVar(&modsKind, "kind", "", "filter by affix kind (prefix or suffix)")
	modsCmd.Flags().Int64Var(&modsMinIlvl, "min-ilvl", 1, "minimum item level")
	modsCmd.Flags().Int64Var(&modsMaxIlvl, "max-ilvl", 100, "maximum item level")
	modsCmd.Flags().StringVar(&modsSearch, "search", "", "rank results by name similarity")
	rootCmd.AddCommand(modsCmd)
}

var modsCmd = &cobra.Command{
	Use:   "mods <item class>",
	Short: "Prints stored affix mods for an item class.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var body struct {
			Mods []struct {
				Name      string   `json:"name"`
				AffixKind string   `json:"affixKind"`
				Tier      string   `json:"tier"`
				ItemLevel int64    `json:"itemLevel"`
				Tags      []string `json:"tags"`
			} `json:"mods"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetQueryParams(map[string]string{
				"kind":    modsKind,
				"minIlvl": strconv.FormatInt(modsMinIlvl, 10),
				"maxIlvl": strconv.FormatInt(modsMaxIlvl, 10),
				"search":  modsSearch,
			}).
			SetResult(&body).
			Get(fmt.Sprintf("/api/mods/%s", args[0]))
		if err != nil {
			fail(err)
		}
		if res.StatusCode() != http.StatusOK {
			failStatus(res)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Name", "Kind", "Tier", "Item Level", "Tags"})
		for _, m := range body.Mods {
			t.AppendRow(table.Row{
				m.Name, m.AffixKind, m.Tier, m.ItemLevel,
				strings.Join(m.Tags, ", "),
			})
		}
		t.Render()
	},
}
