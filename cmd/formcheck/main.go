// Package main provides the formcheck command line tool: batch validation of
// values against a schema, schema linting, and the HTTP server.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"

	"github.com/dlovans/formcheck/internal/config"
	"github.com/dlovans/formcheck/internal/logger"
	"github.com/dlovans/formcheck/internal/server"
	"github.com/dlovans/formcheck/pkg/form"
	"github.com/dlovans/formcheck/pkg/lint"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "validate":
		return handleValidate(args[1:], stdin, stdout, stderr)
	case "lint":
		return handleLint(args[1:], stdin, stdout, stderr)
	case "rules":
		for _, name := range form.DefaultRegistry().Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	case "serve":
		return handleServe(args[1:], stderr)
	default:
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "formcheck - declarative form validation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  formcheck validate -schema schema.yaml [-values values.json] [-server-errors errors.json] [-json]")
	fmt.Fprintln(w, "  formcheck lint [-file schema.yaml]")
	fmt.Fprintln(w, "  formcheck rules")
	fmt.Fprintln(w, "  formcheck serve [-addr :8080] [-log-level info]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  formcheck validate -schema signup.yaml -values values.json")
	fmt.Fprintln(w, "  cat values.json | formcheck validate -schema signup.yaml -json")
	fmt.Fprintln(w, "  formcheck lint -file signup.yaml")
}

func handleValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("validate", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	schemaPath := cmd.String("schema", "", "Schema file, YAML or JSON")
	valuesPath := cmd.String("values", "", "Values JSON file (or use stdin)")
	serverErrorsPath := cmd.String("server-errors", "", "JSON object of server errors per field")
	asJSON := cmd.Bool("json", false, "Print the full report as JSON")
	if err := cmd.Parse(args); err != nil {
		return 2
	}

	if *schemaPath == "" {
		fmt.Fprintln(stderr, "Error: -schema is required")
		return 1
	}

	doc, err := form.LoadFile(*schemaPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	values := map[string]any{}
	if err := decodeInput(*valuesPath, stdin, &values); err != nil {
		fmt.Fprintf(stderr, "Error reading values: %v\n", err)
		return 1
	}

	var serverErrors form.ServerErrors
	if *serverErrorsPath != "" {
		if err := decodeInput(*serverErrorsPath, nil, &serverErrors); err != nil {
			fmt.Fprintf(stderr, "Error reading server errors: %v\n", err)
			return 1
		}
	}

	log, err := cliLogger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	engine := form.NewEngine(form.WithLogger(log.Logger))
	report, err := engine.Evaluate(doc, values, serverErrors)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	} else {
		printReport(stdout, report)
	}

	if !report.Status.Valid {
		return 1
	}
	return 0
}

func printReport(w io.Writer, report form.Report) {
	for _, field := range report.Fields {
		if len(field.Messages) == 0 {
			fmt.Fprintf(w, "✓ %s\n", field.Name)
			continue
		}
		for _, msg := range field.Messages {
			fmt.Fprintf(w, "✗ %s: %s\n", field.Name, msg)
		}
	}
	if report.Status.Valid {
		fmt.Fprintln(w, "✓ Form is valid")
	} else {
		fmt.Fprintln(w, "✗ Form is invalid")
	}
}

func handleLint(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("lint", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	filePath := cmd.String("file", "", "Schema file to lint (or use stdin)")
	if err := cmd.Parse(args); err != nil {
		return 2
	}

	input, err := readInput(*filePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}

	result, err := lint.Run(string(input))
	if err != nil {
		fmt.Fprintf(stderr, "Lint error: %v\n", err)
		return 1
	}

	if len(result.Issues) == 0 {
		fmt.Fprintln(stdout, "✓ No issues found")
		return 0
	}

	for _, issue := range result.Issues {
		icon := "⚠"
		if issue.Severity == "error" {
			icon = "✗"
		}
		location := ""
		if issue.Field != "" {
			location = fmt.Sprintf(" [field: %s]", issue.Field)
		}
		if issue.Rule != "" {
			location += fmt.Sprintf(" [rule: %s]", issue.Rule)
		}
		fmt.Fprintf(stdout, "%s %s%s: %s\n", icon, issue.Severity, location, issue.Message)
	}

	if !result.Valid {
		return 1
	}
	return 0
}

func handleServe(args []string, stderr io.Writer) int {
	cmd := flag.NewFlagSet("serve", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	overrides := new(config.Config)
	cmd.StringVar(&overrides.Server.Addr, "addr", "", "Listen address host:port")
	cmd.StringVar(&overrides.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	if err := cmd.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	log := logger.NewLogger("server", level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := form.NewEngine(form.WithLogger(log.Logger))
	if err := server.New(cfg, engine, log).Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return 1
	}
	return 0
}

// cliLogger builds the logger for one-shot commands. Only FORMCHECK_LOG_LEVEL
// matters here; the default keeps engine debug output quiet.
func cliLogger(stderr io.Writer) (*logger.Logger, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	l := logger.NewLogger("cli", level)
	l.Logger = l.Output(stderr)
	return l, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	if stdin == nil {
		return nil, nil
	}
	return io.ReadAll(stdin)
}

// decodeInput reads JSON from path, or stdin when path is empty.
// Empty input leaves v untouched.
func decodeInput(path string, stdin io.Reader, v any) error {
	data, err := readInput(path, stdin)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
