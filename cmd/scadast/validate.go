package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"

	"github.com/openscad-lang/scadast/pkg/scadspec"
)

// complianceMax is the maximum compliance percentage.
const complianceMax = 100

const defaultSchemaSentinel = "embedded"

var errValidationFailed = errors.New("schema validation failed")

func validateCmd() *cobra.Command {
	var schemaPath string

	var colorize, nocolor bool

	cmd := &cobra.Command{
		Use:   "validate <file.json|->",
		Short: "Validate a scadast AST JSON document against the wire schema",
		Long: `Validate a scadast AST JSON document (as produced by "scadast parse")
against the canonical scadast JSON schema.

Examples:
  scadast validate tree.json
  scadast validate - < tree.json
  scadast validate --schema custom-schema.json tree.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], schemaPath, colorize, nocolor)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", defaultSchemaSentinel, "path to scadast JSON schema")
	cmd.Flags().BoolVar(&colorize, "color", false, "force colored output")
	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(inputPath, schemaPath string, colorize, nocolor bool) error {
	if nocolor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	} else if colorize {
		color.NoColor = false //nolint:reassign // intentional override of library global
	}

	inputReader, inputLabel, err := loadInput(inputPath)
	if err != nil {
		return err
	}

	if closer, ok := inputReader.(io.Closer); ok {
		defer closer.Close()
	}

	var inputData any

	dec := json.NewDecoder(inputReader)
	dec.UseNumber()

	if decodeErr := dec.Decode(&inputData); decodeErr != nil {
		return fmt.Errorf("invalid JSON in %s: %w", inputLabel, decodeErr)
	}

	schemaLoader, err := loadSchema(schemaPath)
	if err != nil {
		return err
	}

	inputLoader := gojsonschema.NewGoLoader(inputData)

	result, err := gojsonschema.Validate(schemaLoader, inputLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		color.New(color.FgGreen).Fprintf(os.Stdout, "scadast AST is valid (%s)\n", inputLabel)
		color.New(color.FgGreen).Fprintf(os.Stdout, "  Compliance: 100%%\n")

		return nil
	}

	reportValidationFailure(inputData, inputLabel, result.Errors())

	return fmt.Errorf("%w: %s", errValidationFailed, inputLabel)
}

func reportValidationFailure(inputData any, inputLabel string, errs []gojsonschema.ResultError) {
	compliance := calculateCompliance(inputData, errs)

	color.New(color.FgRed).Fprintf(os.Stdout, "scadast AST validation failed (%s)\n", inputLabel)
	color.New(color.FgYellow).Fprintf(os.Stdout, "  Compliance: %d%%\n", compliance)

	fmt.Fprintf(os.Stdout, "\nErrors:\n")

	for _, verr := range errs {
		actualValue := getActualValue(inputData, verr.Field())

		if actualValue != "" {
			color.New(color.FgRed).Fprintf(os.Stdout, "  - %s: %s (got %q)\n", verr.Field(), verr.Description(), actualValue)
		} else {
			color.New(color.FgRed).Fprintf(os.Stdout, "  - %s: %s\n", verr.Field(), verr.Description())
		}
	}

	fmt.Fprintf(os.Stdout, "\nRecommendations:\n")
	provideRecommendations(errs)
}

func loadInput(inputPath string) (io.Reader, string, error) {
	if inputPath == "-" {
		return os.Stdin, "stdin", nil
	}

	inputFile, err := os.Open(inputPath) // #nosec G304 -- user-supplied path is the CLI's stated contract
	if err != nil {
		return nil, "", fmt.Errorf("failed to open input %s: %w", inputPath, err)
	}

	return inputFile, inputPath, nil
}

func loadSchema(schemaPath string) (gojsonschema.JSONLoader, error) {
	if schemaPath == "" || schemaPath == defaultSchemaSentinel {
		schemaBytes, err := scadspec.SchemaFS.ReadFile("scadast-schema.json")
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded schema: %w", err)
		}

		return gojsonschema.NewBytesLoader(schemaBytes), nil
	}

	schemaBytes, err := os.ReadFile(schemaPath) // #nosec G304 -- user-supplied schema path is the CLI's stated contract
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	return gojsonschema.NewBytesLoader(schemaBytes), nil
}

func provideRecommendations(validationErrors []gojsonschema.ResultError) {
	recommendations := make(map[string]string)

	for _, validationErr := range validationErrors {
		classifyRecommendation(recommendations, validationErr.Field(), validationErr.Description())
	}

	seen := make(map[string]bool)

	for _, rec := range recommendations {
		if !seen[rec] {
			color.New(color.FgCyan).Fprintf(os.Stdout, "  - %s\n", rec)
			seen[rec] = true
		}
	}

	if len(validationErrors) > 0 {
		fmt.Fprintf(os.Stdout, "\nGeneral tips:\n")
		color.New(color.FgCyan).Fprintf(os.Stdout, "  - Check the schema at pkg/scadspec/scadast-schema.json\n")
		color.New(color.FgCyan).Fprintf(os.Stdout, "  - Ensure all required fields are present\n")
		color.New(color.FgCyan).Fprintf(os.Stdout, "  - Validate field types and values against the schema\n")
	}
}

func classifyRecommendation(recommendations map[string]string, field, description string) {
	switch {
	case strings.Contains(description, "kind") && strings.Contains(description, "enum"):
		recommendations["kind"] = "Use canonical statement kinds like 'Primitive', 'Transform', 'CSG', 'ModuleCall'"

	case strings.Contains(description, "is required"):
		if strings.Contains(field, "span") {
			recommendations["span"] = "Every statement and diagnostic must carry a 'span' with start/end positions"
		}

	case strings.Contains(description, "line") || strings.Contains(description, "column"):
		recommendations["position"] = "Position fields use: line, column, byte (line and column 1-based, byte 0-based)"

	case strings.Contains(description, "additionalProperties"):
		recommendations["params"] = "Entries in 'params' must be parameterValue objects with an integer 'kind'"

	case strings.Contains(description, "level"):
		recommendations["level"] = "Diagnostic 'level' must be one of: warning, error"
	}
}

func calculateCompliance(inputData any, validationErrors []gojsonschema.ResultError) int {
	totalNodes := countNodes(inputData)
	if totalNodes == 0 {
		return 0
	}

	validNodes := totalNodes - len(validationErrors)
	compliance := int(float64(validNodes) / float64(totalNodes) * complianceMax)

	if compliance < 0 {
		compliance = 0
	} else if compliance > complianceMax {
		compliance = complianceMax
	}

	return compliance
}

func countNodes(data any) int {
	count := 1

	switch typedData := data.(type) {
	case map[string]any:
		if stmts, hasStmts := typedData["statements"].([]any); hasStmts {
			for _, stmt := range stmts {
				count += countNodes(stmt)
			}
		}
	case []any:
		for _, item := range typedData {
			count += countNodes(item)
		}
	}

	return count
}

func getActualValue(data any, fieldPath string) string {
	parts := strings.Split(fieldPath, ".")

	current := data

	for _, part := range parts {
		switch typedVal := current.(type) {
		case map[string]any:
			val, found := typedVal[part]
			if !found {
				return ""
			}

			current = val
		case []any:
			idx, convErr := strconv.Atoi(part)
			if convErr != nil || idx < 0 || idx >= len(typedVal) {
				return ""
			}

			current = typedVal[idx]
		default:
			return ""
		}
	}

	return formatValue(current)
}

func formatValue(value any) string {
	switch typedVal := value.(type) {
	case string:
		return typedVal
	case float64:
		return strconv.FormatFloat(typedVal, 'f', -1, 64)
	case int:
		return strconv.Itoa(typedVal)
	case bool:
		return strconv.FormatBool(typedVal)
	default:
		return fmt.Sprintf("%v", typedVal)
	}
}
