package main

import (
	"fmt"
	"os"

	"poemarket-backend/cmd/poemarket-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("POEMARKET_BASE_URL")
	if !ok {
		fmt.Println("You should specify the base url of the poemarket service in the environment variable POEMARKET_BASE_URL.")
		os.Exit(1)
	}
	cmd.BaseUrl = baseUrl

	cmd.Execute()
}
