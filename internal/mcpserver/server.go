// Package mcpserver exposes the validation engine over the Model Context
// Protocol so agent tooling can validate and repair project files without
// shelling out to the CLI.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ganot/projfix/internal/document"
	"github.com/ganot/projfix/internal/engine"
	"github.com/ganot/projfix/internal/issue"
	"github.com/ganot/projfix/internal/report"
)

const serverInstructions = `projfix validates and repairs Microsoft Project XML files.

Use validate_file to check a file without touching it. Use repair_file to
write a repaired copy plus a repair log next to it. Violations that cannot be
repaired automatically (broken references, residual cycles, unparseable
dates) are returned in both cases and must be fixed by hand.`

// Config contains server configuration.
type Config struct {
	Logger           *slog.Logger
	ExemptUIDs       []string
	DefaultTaskHours int
}

type server struct {
	engine *engine.Engine
	cfg    Config
}

// NewServer creates and configures an MCP server with the validation tools.
func NewServer(cfg Config) *sdkmcp.Server {
	s := &server{
		engine: engine.New(cfg.Logger),
		cfg:    cfg,
	}

	srv := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "projfix",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "validate_file",
		Description: "Validate an MS Project XML file and report violations without modifying it",
	}, s.validateFile)
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "repair_file",
		Description: "Repair an MS Project XML file, writing the repaired copy and a repair log",
	}, s.repairFile)

	return srv
}

// ValidateArgs are the inputs to validate_file.
type ValidateArgs struct {
	Path string `json:"path" jsonschema:"path to the MS Project XML file"`
}

// RepairArgs are the inputs to repair_file.
type RepairArgs struct {
	Input  string `json:"input" jsonschema:"path to the MS Project XML file to repair"`
	Output string `json:"output" jsonschema:"path to write the repaired XML file"`
}

// Finding mirrors one violation or repair record.
type Finding struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// RunResult is the structured outcome returned by both tools.
type RunResult struct {
	RunID      string    `json:"run_id"`
	Success    bool      `json:"success"`
	Violations []Finding `json:"violations"`
	Repairs    []Finding `json:"repairs,omitempty"`
	Report     string    `json:"report"`
}

func (s *server) validateFile(ctx context.Context, req *sdkmcp.CallToolRequest, args ValidateArgs) (*sdkmcp.CallToolResult, RunResult, error) {
	doc, err := document.Load(args.Path)
	if err != nil {
		return nil, RunResult{}, err
	}
	result := s.engine.Run(doc, engine.Options{Mode: engine.ModeValidate})
	return nil, toRunResult(result), nil
}

func (s *server) repairFile(ctx context.Context, req *sdkmcp.CallToolRequest, args RepairArgs) (*sdkmcp.CallToolResult, RunResult, error) {
	doc, err := document.Load(args.Input)
	if err != nil {
		return nil, RunResult{}, err
	}
	result := s.engine.Run(doc, engine.Options{
		Mode:             engine.ModeRepair,
		ExemptUIDs:       s.cfg.ExemptUIDs,
		DefaultTaskHours: s.cfg.DefaultTaskHours,
	})
	if err := doc.WriteFile(args.Output); err != nil {
		return nil, RunResult{}, err
	}
	logPath := repairLogPath(args.Output)
	if err := os.WriteFile(logPath, []byte(report.RepairLog(&result.Repairs, &result.Violations)), 0o644); err != nil {
		return nil, RunResult{}, fmt.Errorf("failed to write repair log: %w", err)
	}
	return nil, toRunResult(result), nil
}

func toRunResult(result *engine.Result) RunResult {
	return RunResult{
		RunID:      result.RunID,
		Success:    result.OK(),
		Violations: toFindings(&result.Violations),
		Repairs:    toFindings(&result.Repairs),
		Report:     report.RenderValidation(result),
	}
}

func toFindings(list *issue.List) []Finding {
	findings := make([]Finding, 0, list.Len())
	for _, record := range list.Records() {
		findings = append(findings, Finding{
			Category: string(record.Category),
			Message:  record.Message,
		})
	}
	return findings
}

func repairLogPath(outputPath string) string {
	if len(outputPath) > 4 && outputPath[len(outputPath)-4:] == ".xml" {
		return outputPath[:len(outputPath)-4] + "_repair.log"
	}
	return outputPath + "_repair.log"
}
