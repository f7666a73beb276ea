// Package mcp exposes regression analysis as MCP tools over stdio so an
// editor agent can ask for the signature report of a clone directly.
package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"regscan/internal/analyze"
	"regscan/internal/logging"
	"regscan/internal/regress"
	"regscan/internal/settings"
	"regscan/internal/tally"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server. Each tool call builds its own pipeline,
// so calls never share scan state.
type Server struct {
	MCPServer *sdkmcp.Server
	Settings  settings.Settings
	Cwd       string
}

// NewServer creates an MCP server with the analysis tools registered.
// cwd is used when a call does not name a working directory.
func NewServer(s settings.Settings, cwd, version string) *Server {
	srv := &Server{Settings: s, Cwd: cwd}
	srv.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "regscan", Version: version},
		nil,
	)
	srv.registerTools()
	return srv
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_configurations",
		Description: "List the regression configurations under the scratch area of a repository clone.",
	}, s.handleListConfigurations)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "analyze_regression",
		Description: "Scan regression run logs (or status files with fast_search) and return error signatures by frequency.",
	}, s.handleAnalyze)
}

type listConfigurationsInput struct {
	Cwd  string `json:"cwd,omitempty" jsonschema:"working directory inside the repository clone (default: server cwd)"`
	User string `json:"user,omitempty" jsonschema:"user identity segment of the clone path (default: server setting)"`
}

type listConfigurationsOutput struct {
	ScratchDir     string   `json:"scratch_dir"`
	Configurations []string `json:"configurations"`
}

type analyzeInput struct {
	Cwd        string `json:"cwd,omitempty" jsonschema:"working directory inside the repository clone (default: server cwd)"`
	User       string `json:"user,omitempty" jsonschema:"user identity segment of the clone path (default: server setting)"`
	Config     string `json:"config,omitempty" jsonschema:"analyse only this configuration"`
	FastSearch bool   `json:"fast_search,omitempty" jsonschema:"scan the short status files instead of full logs"`
	Style      string `json:"style,omitempty" jsonschema:"report style: plain, table or markdown"`
}

type analyzeOutput struct {
	ScratchDir string `json:"scratch_dir"`
	Report     string `json:"report"`
	Artifacts  int    `json:"artifacts"`
	Signatures int    `json:"signatures"`
	Skipped    int    `json:"skipped"`
}

func (s *Server) pipeline(cwd, user string) (*analyze.Pipeline, string, error) {
	st := s.Settings
	if user != "" {
		st.User = user
	}
	if cwd == "" {
		cwd = s.Cwd
	}
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, "", fmt.Errorf("cwd: %w", err)
	}
	p, err := analyze.New(st, nil)
	return p, cwd, err
}

func (s *Server) handleListConfigurations(_ context.Context, _ *sdkmcp.CallToolRequest, input listConfigurationsInput) (*sdkmcp.CallToolResult, listConfigurationsOutput, error) {
	p, cwd, err := s.pipeline(input.Cwd, input.User)
	if err != nil {
		return nil, listConfigurationsOutput{}, err
	}
	dir, cfgs, err := p.Configurations(cwd, "")
	if err != nil {
		return nil, listConfigurationsOutput{}, fmt.Errorf("list_configurations: %w", err)
	}
	out := listConfigurationsOutput{ScratchDir: dir, Configurations: []string{}}
	for _, c := range cfgs {
		out.Configurations = append(out.Configurations, c.Name)
	}
	return nil, out, nil
}

func (s *Server) handleAnalyze(_ context.Context, _ *sdkmcp.CallToolRequest, input analyzeInput) (*sdkmcp.CallToolResult, analyzeOutput, error) {
	style, err := tally.ParseStyle(input.Style)
	if err != nil {
		return nil, analyzeOutput{}, err
	}
	p, cwd, err := s.pipeline(input.Cwd, input.User)
	if err != nil {
		return nil, analyzeOutput{}, err
	}
	mode := regress.FullLog
	if input.FastSearch {
		mode = regress.FastSearch
	}
	logging.New("mcp").Info("analyze_regression", "cwd", cwd, "config", input.Config, "mode", mode.String())

	res, err := p.Run(cwd, analyze.Options{Config: input.Config, Mode: mode})
	if err != nil {
		return nil, analyzeOutput{}, fmt.Errorf("analyze_regression: %w", err)
	}
	var report strings.Builder
	if err := res.Tally.Render(&report, style); err != nil {
		return nil, analyzeOutput{}, err
	}
	return nil, analyzeOutput{
		ScratchDir: res.ScratchDir,
		Report:     report.String(),
		Artifacts:  res.Stats.Artifacts,
		Signatures: res.Stats.Signatures,
		Skipped:    len(res.Notices),
	}, nil
}
