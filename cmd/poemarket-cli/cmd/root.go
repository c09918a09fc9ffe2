package cmd

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var BaseUrl string

var client *resty.Client

var rootCmd = &cobra.Command{
	Use:   "poemarket-cli",
	Short: "poemarket-cli is a CLI interface for the poemarket scraping service.",
}

func Execute() {
	client = resty.New().SetBaseURL(BaseUrl)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func failStatus(res *resty.Response) {
	fmt.Fprintf(os.Stderr, "request failed with status %d: %s\n", res.StatusCode(), res.String())
	os.Exit(1)
}
