package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/pantry-scan/internal/parsing"
)

func readInput(args []string) ([]byte, error) {
	switch len(args) {
	case 0:
		return io.ReadAll(os.Stdin)
	case 1:
		if args[0] == "-" {
			return io.ReadAll(os.Stdin)
		}
		return os.ReadFile(args[0])
	}
	return nil, errors.New("expected at most one input file")
}

func run(args []string, stdout io.Writer) error {
	fs := ff.NewFlagSet("receipt-parse")
	var (
		display   = fs.BoolLong("display", "Print a human-readable summary instead of JSON")
		rulesPath = fs.StringLong("rules", "", "YAML file overriding the parser rules (optional)")
		logLevel  = fs.StringLong("log-level", "warn", "Log level: debug, info, warn or error")
	)
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("PANTRY_SCAN")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		return err
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	parser := parsing.NewDefaultParser()
	if *rulesPath != "" {
		rules, err := parsing.LoadRules(*rulesPath)
		if err != nil {
			return err
		}
		parser = parsing.NewParser(rules)
	}

	text, err := readInput(fs.GetArgs())
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	parsed := parser.Parse(string(text))
	slog.Debug("Parsed receipt", "items", len(parsed.Items), "confidence", parsed.Confidence)

	if *display {
		_, err := fmt.Fprint(stdout, parsing.FormatDisplay(parsed))
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(parsed)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
