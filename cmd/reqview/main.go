package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/reqview/internal/cli"
	"github.com/studiowebux/reqview/internal/config"
	"github.com/studiowebux/reqview/internal/tui"
	"github.com/studiowebux/reqview/internal/version"
)

// Set via -ldflags at release time
var buildVersion = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reqview",
	Short: "reqview - interactive API testing tool",
	Long: `reqview is an API testing tool with an interactive TUI.

Fill in a URL, method and JSON body, dispatch the request, and inspect the
status, headers and body. Failures are classified so the Error tab tells you
whether the URL, the body, the network or the server was at fault.

Run without arguments to start the TUI, or use 'send' for one-shot requests
from scripts.

Examples:
  reqview                                        # Start the interactive TUI
  reqview send https://api.example.com/users     # One-shot GET
  reqview send -X POST -d '{"name":"a"}' <url>   # POST with a JSON body
  reqview send -d @payload.jsonc <url>           # Body from a file, comments stripped
  reqview send -H 'Authorization: Bearer t' <url>
  reqview send -o json <url> | jq .status        # Machine-readable result`,
	Version: buildVersion,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return tui.Run(buildVersion)
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <url>",
	Short: "Dispatch a single request and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		sendOpts.URL = args[0]
		return cli.Run(sendOpts)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and check for updates",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reqview v%s\n", buildVersion)

		available, latest, url, err := version.CheckForUpdate(buildVersion)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Update check failed: %v\n", err)
			return
		}
		if available {
			fmt.Printf("Update available: v%s\n%s\n", latest, url)
		} else {
			fmt.Println("You are on the latest version.")
		}
	},
}

var sendOpts cli.RunOptions

func init() {
	sendCmd.Flags().StringVarP(&sendOpts.Method, "method", "X", "", "HTTP method (default from config)")
	sendCmd.Flags().StringVarP(&sendOpts.Body, "data", "d", "", "request body; @file reads a file, - reads stdin")
	sendCmd.Flags().StringArrayVarP(&sendOpts.Headers, "header", "H", nil, "request header \"Name: Value\" (repeatable)")
	sendCmd.Flags().StringVar(&sendOpts.CertFile, "cert", "", "client certificate file (summarized, not applied)")
	sendCmd.Flags().StringVarP(&sendOpts.OutputFormat, "output", "o", "", "output format: text, json, yaml, body")
	sendCmd.Flags().StringVarP(&sendOpts.Filter, "filter", "f", "", "JMESPath filter applied to the response body")
	sendCmd.Flags().BoolVarP(&sendOpts.Insecure, "insecure", "k", false, "skip TLS certificate verification")
	sendCmd.Flags().BoolVar(&sendOpts.NoFollow, "no-follow", false, "do not follow redirects")
	sendCmd.Flags().BoolVarP(&sendOpts.ShowFull, "full", "F", false, "include response headers in text output")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(versionCmd)
}
