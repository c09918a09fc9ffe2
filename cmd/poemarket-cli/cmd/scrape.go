package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var scrapeLeague string

func init() {
	scrapeBuildsCmd.Flags().StringVar(&scrapeLeague, "league", "Standard", "league to scrape builds for")

	scrapeCmd.AddCommand(scrapeBuildsCmd)
	scrapeCmd.AddCommand(scrapeModsCmd)
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Triggers scraping jobs on the service.",
}

var scrapeBuildsCmd = &cobra.Command{
	Use:   "builds",
	Short: "Scrapes player builds for a league.",
	Run: func(cmd *cobra.Command, args []string) {
		var body struct {
			League   string `json:"league"`
			Count    int    `json:"count"`
			Attempts []struct {
				Strategy string `json:"strategy"`
				Records  int    `json:"records"`
			} `json:"attempts"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetQueryParam("league", scrapeLeague).
			SetResult(&body).
			Post("/api/scrape/builds")
		if err != nil {
			fail(err)
		}
		if res.StatusCode() != http.StatusOK {
			failStatus(res)
		}

		fmt.Printf("scraped %d builds for league %q\n", body.Count, body.League)
		for _, attempt := range body.Attempts {
			fmt.Printf("  %s: %d records\n", attempt.Strategy, attempt.Records)
		}
	},
}

var scrapeModsCmd = &cobra.Command{
	Use:   "mods",
	Short: "Scrapes the affix mod database.",
	Run: func(cmd *cobra.Command, args []string) {
		var body struct {
			PrefixCount int `json:"prefix_count"`
			SuffixCount int `json:"suffix_count"`
			Total       int `json:"total"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetResult(&body).
			Post("/api/scrape/mods")
		if err != nil {
			fail(err)
		}
		if res.StatusCode() != http.StatusOK {
			failStatus(res)
		}

		fmt.Printf("scraped %d mods (%d prefixes, %d suffixes)\n",
			body.Total, body.PrefixCount, body.SuffixCount)
	},
}
