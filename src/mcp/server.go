// Package mcp exposes the build operations as MCP tools over stdio, so an
// agent can trigger Cirrus CI builds and read their status and logs.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cirrus-run/src/api"
	"cirrus-run/src/config"
	"cirrus-run/src/logger"
	"cirrus-run/src/logstream"
	"cirrus-run/src/queries"
)

// Server is the MCP server for cirrus-run.
type Server struct {
	mcpServer *server.MCPServer
	client    *api.Client
	cfg       *config.Config
}

// NewServer creates an MCP server bound to one API session. Logging is
// silenced because stdio carries the MCP protocol.
func NewServer(cfg *config.Config) *Server {
	s := server.NewMCPServer(
		"cirrus-run",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		client:    api.NewClient(cfg.APIURL, cfg.Token, logger.NewSilentLogger()),
		cfg:       cfg,
	}
	srv.registerTools()

	return srv
}

// registerTools registers all available tools.
func (s *Server) registerTools() {
	triggerTool := mcp.NewTool("trigger_build",
		mcp.WithDescription("Schedule a Cirrus CI build for a GitHub repository with an explicit config override. Returns the new build id and its web URL."),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("GitHub repository owner"),
		),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("GitHub repository name"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch to attach the build to (default: master)"),
		),
		mcp.WithString("config",
			mcp.Required(),
			mcp.Description("Cirrus CI configuration (YAML) to run"),
		),
	)

	statusTool := mcp.NewTool("get_build_status",
		mcp.WithDescription("Fetch the current status of a Cirrus CI build, including any task notifications."),
		mcp.WithString("build_id",
			mcp.Required(),
			mcp.Description("Build id returned by trigger_build"),
		),
	)

	logTool := mcp.NewTool("get_build_log",
		mcp.WithDescription("Fetch the full log of a finished Cirrus CI build, ordered by task and command."),
		mcp.WithString("build_id",
			mcp.Required(),
			mcp.Description("Build id returned by trigger_build"),
		),
	)

	s.mcpServer.AddTool(triggerTool, s.handleTriggerBuild)
	s.mcpServer.AddTool(statusTool, s.handleBuildStatus)
	s.mcpServer.AddTool(logTool, s.handleBuildLog)
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// handleTriggerBuild resolves the repository and schedules a build.
func (s *Server) handleTriggerBuild(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner := request.GetString("owner", "")
	repo := request.GetString("repo", "")
	buildConfig := request.GetString("config", "")
	branch := request.GetString("branch", "master")
	if owner == "" || repo == "" {
		return mcp.NewToolResultError("owner and repo parameters are required"), nil
	}
	if buildConfig == "" {
		return mcp.NewToolResultError("config parameter is required"), nil
	}

	repoID, err := queries.GetRepo(ctx, s.client, owner, repo)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("repository lookup failed: %v", err)), nil
	}
	buildID, err := queries.CreateBuild(ctx, s.client, repoID, branch, buildConfig)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build creation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Build %s scheduled: https://cirrus-ci.com/build/%s", buildID, buildID)), nil
}

// handleBuildStatus fetches the build status once; it does not poll.
func (s *Server) handleBuildStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	buildID := request.GetString("build_id", "")
	if buildID == "" {
		return mcp.NewToolResultError("build_id parameter is required"), nil
	}

	reply, err := s.client.Query(ctx, queries.BuildStatusQuery, map[string]interface{}{
		"build": buildID,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status fetch failed: %v", err)), nil
	}
	status, tasks, err := queries.BuildStatus(reply)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status fetch failed: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Build %s: %s", buildID, status)
	for _, task := range tasks {
		for _, message := range task.Notifications {
			fmt.Fprintf(&sb, "\n- %s", message)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleBuildLog collects the whole log stream into one text result.
func (s *Server) handleBuildLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	buildID := request.GetString("build_id", "")
	if buildID == "" {
		return mcp.NewToolResultError("build_id parameter is required"), nil
	}

	chunks, err := logstream.Stream(ctx, s.client, s.cfg.LogURL, buildID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("log fetch failed: %v", err)), nil
	}

	var sb strings.Builder
	for chunk := range chunks {
		sb.WriteString(chunk)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
