package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hurttlocker/vitals/internal/config"
	"github.com/hurttlocker/vitals/internal/ingest"
	"github.com/hurttlocker/vitals/internal/mcp"
	"github.com/hurttlocker/vitals/internal/normalize"
	"github.com/hurttlocker/vitals/internal/store"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(os.Args[2:])
	case "parse":
		err = runParse(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "mcp":
		err = runMCP(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("vitals %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cliFlags holds the flags shared across subcommands.
type cliFlags struct {
	configPath string
	dbPath     string
	maxWeight  string
	maxHeight  string
	dryRun     bool
	weight     string
	height     string
	args       []string
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		takeValue := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("flag %s requires a value", arg)
			}
			i++
			return args[i], nil
		}

		var err error
		switch {
		case arg == "--config":
			f.configPath, err = takeValue()
		case arg == "--db":
			f.dbPath, err = takeValue()
		case arg == "--max-weight":
			f.maxWeight, err = takeValue()
		case arg == "--max-height":
			f.maxHeight, err = takeValue()
		case arg == "--weight" || arg == "-w":
			f.weight, err = takeValue()
		case arg == "--height" || arg == "-t":
			f.height, err = takeValue()
		case arg == "--dry-run" || arg == "-n":
			f.dryRun = true
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown flag: %s", arg)
		default:
			f.args = append(f.args, arg)
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *cliFlags) resolve() (config.ResolvedConfig, normalize.Limits, error) {
	resolved, err := config.ResolveConfig(config.ResolveOptions{
		ConfigPath:   f.configPath,
		CLIDBPath:    f.dbPath,
		CLIMaxWeight: f.maxWeight,
		CLIMaxHeight: f.maxHeight,
	})
	if err != nil {
		return resolved, normalize.Limits{}, err
	}
	limits, err := resolved.Limits()
	return resolved, limits, err
}

// runConvert reads weight and height entries interactively, one patient at a
// time, until the user quits with "q".
func runConvert(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	_, limits, err := f.resolve()
	if err != nil {
		return err
	}
	n := normalize.New(limits)

	scanner := bufio.NewScanner(os.Stdin)
	readLine := func(prompt string) (string, bool) {
		fmt.Print(prompt)
		if !scanner.Scan() {
			return "", false
		}
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "q") {
			return "", false
		}
		return line, true
	}

	fmt.Println("vitals converter — type 'q' to quit")
	for {
		fmt.Println()
		wIn, ok := readLine("Weight (e.g. 70kg, 11st6): ")
		if !ok {
			return scanner.Err()
		}
		hIn, ok := readLine("Height (e.g. 180cm, 5'11): ")
		if !ok {
			return scanner.Err()
		}

		lbs, werr := n.ParseWeight(wIn)
		h, herr := n.ParseHeight(hIn)

		if werr != nil {
			fmt.Fprintf(os.Stderr, "  weight: %v\n", werr)
		} else {
			fmt.Printf("  WEIGHT: %.2f lbs\n", lbs)
		}
		if herr != nil {
			fmt.Fprintf(os.Stderr, "  height: %v\n", herr)
		} else {
			fmt.Printf("  HEIGHT: %s\n", normalize.FormatHeight(h))
		}
	}
}

// runParse normalizes a single entry given on the command line.
func runParse(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if f.weight == "" && f.height == "" {
		return fmt.Errorf("usage: vitals parse --weight <text> | --height <text>")
	}
	_, limits, err := f.resolve()
	if err != nil {
		return err
	}
	n := normalize.New(limits)

	if f.weight != "" {
		lbs, err := n.ParseWeight(f.weight)
		if err != nil {
			return err
		}
		fmt.Printf("%.2f lbs\n", lbs)
	}
	if f.height != "" {
		h, err := n.ParseHeight(f.height)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", normalize.FormatHeight(h))
	}
	return nil
}

// runImport batch-imports CSV files of raw entries into the audit store.
func runImport(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(f.args) == 0 {
		return fmt.Errorf("usage: vitals import <file.csv> [--dry-run]")
	}
	resolved, limits, err := f.resolve()
	if err != nil {
		return err
	}

	s, err := store.NewStore(store.StoreConfig{DBPath: resolved.DBPath.Value})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	engine := ingest.NewEngine(s)
	ctx := context.Background()

	if f.dryRun {
		fmt.Println("Dry run mode — no changes will be written")
		fmt.Println()
	}

	total := &ingest.ImportResult{}
	for _, path := range f.args {
		fmt.Printf("Importing %s...\n", path)
		result, err := engine.ImportCSV(ctx, path, ingest.ImportOptions{
			DryRun: f.dryRun,
			Limits: limits,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
			continue
		}
		total.Add(result)
	}

	fmt.Println()
	fmt.Print(ingest.FormatImportResult(total))
	return nil
}

// runStats prints audit-store statistics.
func runStats(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	resolved, _, err := f.resolve()
	if err != nil {
		return err
	}

	s, err := store.NewStore(store.StoreConfig{DBPath: resolved.DBPath.Value})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	stats, err := s.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Observations: %d\n", stats.ObservationCount)
	fmt.Printf("Weights:      %d parsed, %d failed\n", stats.ParsedWeights, stats.FailedWeights)
	fmt.Printf("Heights:      %d parsed, %d failed\n", stats.ParsedHeights, stats.FailedHeights)
	if stats.DBSizeBytes > 0 {
		fmt.Printf("DB size:      %d bytes\n", stats.DBSizeBytes)
	}
	return nil
}

// runMCP serves the normalization tools over MCP stdio.
func runMCP(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	resolved, limits, err := f.resolve()
	if err != nil {
		return err
	}

	s, err := store.NewStore(store.StoreConfig{DBPath: resolved.DBPath.Value})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	srv := mcp.NewServer(mcp.ServerConfig{
		Store:   s,
		Version: version,
		Limits:  limits,
	})
	return mcpserver.ServeStdio(srv)
}

func printUsage() {
	fmt.Printf(`vitals %s — Clinical measurement normalizer

Usage:
  vitals <command> [arguments]

Commands:
  convert             Interactive weight/height conversion
  parse               Normalize one entry (--weight or --height)
  import <file.csv>   Batch-normalize a CSV and record it in the audit store
  stats               Show audit-store statistics
  mcp                 Serve the normalization tools over MCP stdio
  version             Print version

Parse Flags:
  -w, --weight <text>  Raw weight entry, e.g. "11st 6lb"
  -t, --height <text>  Raw height entry, e.g. "5'10"

Import Flags:
  -n, --dry-run       Parse and summarize without writing

Flags:
  --config <path>     Config file (default ~/.vitals/config.yaml)
  --db <path>         Database path (default ~/.vitals/vitals.db)
  --max-weight <lbs>  Plausibility ceiling for weights
  --max-height <in>   Plausibility ceiling for heights
  -h, --help          Show this help message
  -v, --version       Print version
`, version)
}
