// Package main provides the cirrus-run CLI: schedule a Cirrus CI build, wait
// for it to finish and stream its logs.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cirrus-run/src/api"
	"cirrus-run/src/config"
	"cirrus-run/src/logger"
	"cirrus-run/src/logstream"
	"cirrus-run/src/mcp"
	"cirrus-run/src/poller"
	"cirrus-run/src/queries"
	"cirrus-run/src/tui"
)

var (
	flagBranch     string
	flagConfigPath string
	flagTimeout    string
	flagShowLog    bool
	flagWatch      bool
)

// rootCmd runs the full flow: resolve repo, create build, poll, stream logs.
var rootCmd = &cobra.Command{
	Use:   "cirrus-run [owner/repo]",
	Short: "Run Cirrus CI builds from the command line",
	Long: `cirrus-run schedules a build on Cirrus CI, waits for it to reach a
terminal state and streams its logs.

The build configuration is submitted as an explicit override, so the target
repository does not need a .cirrus.yml of its own.

Required environment:
  CIRRUS_TOKEN   API token for Cirrus CI

Optional environment:
  CIRRUS_API_URL, CIRRUS_LOG_URL, CIRRUS_POLL_INTERVAL, CIRRUS_TIMEOUT,
  CIRRUS_CREDITS_MESSAGE`,
	Args: cobra.ExactArgs(1),
	Run:  runBuild,
}

// mcpCmd serves the build operations as MCP tools on stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve build operations as MCP tools on stdio",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(os.Environ())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
		if err := mcp.NewServer(cfg).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagBranch, "branch", "b", "master", "branch to attach the build to")
	rootCmd.Flags().StringVarP(&flagConfigPath, "config", "c", "", "path to the Cirrus CI config to submit (required)")
	rootCmd.Flags().StringVarP(&flagTimeout, "timeout", "t", "", "overall build timeout, e.g. 45m (overrides CIRRUS_TIMEOUT)")
	rootCmd.Flags().BoolVarP(&flagShowLog, "show-log", "l", false, "stream the build log even when the build succeeds")
	rootCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "show a live status line while polling")
	_ = rootCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(mcpCmd)
}

func runBuild(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(os.Environ())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	owner, repo, ok := strings.Cut(args[0], "/")
	if !ok || owner == "" || repo == "" {
		fmt.Fprintf(os.Stderr, "Invalid repository %q, expected owner/repo\n", args[0])
		os.Exit(1)
	}

	configText, err := os.ReadFile(flagConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
		os.Exit(1)
	}

	if flagTimeout != "" {
		timeout, err := time.ParseDuration(flagTimeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid timeout: %v\n", err)
			os.Exit(1)
		}
		cfg.BuildTimeout = timeout
	}

	var log logger.Logger = logger.NewConsoleLogger()
	if flagWatch {
		log = logger.NewSilentLogger()
	}

	ctx := context.Background()
	client := api.NewClient(cfg.APIURL, cfg.Token, log)

	repoID, err := queries.GetRepo(ctx, client, owner, repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Repository lookup failed: %v\n", err)
		os.Exit(exitCode(err))
	}

	buildID, err := queries.CreateBuild(ctx, client, repoID, flagBranch, string(configText))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Build creation failed: %v\n", err)
		os.Exit(exitCode(err))
	}
	fmt.Printf("Build scheduled: https://cirrus-ci.com/build/%s\n", buildID)

	p := poller.New(client, log)
	p.Interval = cfg.PollInterval
	p.Timeout = cfg.BuildTimeout
	p.CreditsMessage = cfg.CreditsMessage

	var pollErr error
	if flagWatch {
		pollErr = watchBuild(ctx, p, buildID)
	} else {
		pollErr = p.Wait(ctx, buildID)
	}

	if pollErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", pollErr)
	}

	if flagShowLog || isBuildFailure(pollErr) {
		streamLog(ctx, client, cfg.LogURL, buildID)
	}

	os.Exit(exitCode(pollErr))
}

// watchBuild runs the poller behind a live status display. The display owns
// the terminal; the poller reports through messages only.
func watchBuild(ctx context.Context, p *poller.Poller, buildID string) error {
	program := tea.NewProgram(tui.NewWatchModel(buildID))
	p.OnStatus = func(status string) {
		program.Send(tui.StatusMsg(status))
	}

	done := make(chan error, 1)
	go func() {
		err := p.Wait(ctx, buildID)
		done <- err
		program.Send(tui.ResultMsg{Err: err})
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Display error: %v\n", err)
	}

	select {
	case err := <-done:
		return err
	default:
		// Display quit before the poll finished.
		fmt.Fprintln(os.Stderr, "Aborted; the build keeps running on Cirrus CI")
		os.Exit(1)
		return nil
	}
}

// streamLog writes the build log to stdout. Failures degrade to placeholder
// chunks inside the stream; only a failure to list the tasks aborts.
func streamLog(ctx context.Context, client *api.Client, logURL, buildID string) {
	chunks, err := logstream.Stream(ctx, client, logURL, buildID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch build log: %v\n", err)
		return
	}
	for chunk := range chunks {
		fmt.Println(chunk)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
