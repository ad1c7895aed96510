package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openscad-lang/scadast/pkg/scadast"
)

// MaxSourceInputBytes is the maximum allowed size for inline source input (1 MB).
const MaxSourceInputBytes = 1 << 20

// Sentinel errors for tool input validation.
var (
	ErrEmptySource      = errors.New("source parameter is required and must not be empty")
	ErrSourceTooLarge   = errors.New("source input exceeds maximum size")
	ErrParserInitFailed = errors.New("failed to initialize the OpenSCAD parser")
)

// ParseInput is the input schema for the scadast_parse tool.
type ParseInput struct {
	Source string `json:"source" jsonschema:"OpenSCAD source text to parse into an AST"`
}

// ToolOutput is a generic wrapper for tool results, mirroring the teacher's
// pkg/mcp.ToolOutput so AddTool's generic structured-output slot is satisfied.
type ToolOutput struct {
	Data any `json:"data"`
}

func validateSourceInput(source string) error {
	if source == "" {
		return ErrEmptySource
	}

	if len(source) > MaxSourceInputBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrSourceTooLarge, len(source), MaxSourceInputBytes)
	}

	return nil
}

func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
		IsError: true,
	}, ToolOutput{}, nil
}

func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, ToolOutput{Data: value}, nil
}

// handleParse implements the scadast_parse MCP tool: parse OpenSCAD source
// into a scadast.File and return it as structured JSON. Parse errors that
// come from a missing/incompatible grammar are tool errors; malformed
// OpenSCAD syntax is not — it surfaces as StmtError/ExprError nodes plus
// diagnostics within an otherwise-successful result, per the compiler's
// recoverable-error design.
func handleParse(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input ParseInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateSourceInput(input.Source); err != nil {
		return errorResult(err)
	}

	parser, err := scadast.NewParser()
	if err != nil {
		return errorResult(fmt.Errorf("%w: %v", ErrParserInitFailed, err))
	}
	defer parser.Close()

	file, err := parser.Parse([]byte(input.Source))
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(file)
}
