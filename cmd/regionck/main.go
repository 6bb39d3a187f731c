package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/regionck/internal/config"
	"github.com/funvibe/regionck/internal/diagnostics"
	"github.com/funvibe/regionck/internal/exports"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %[1]s config [dir]                    print the effective options
  %[1]s codes                           list diagnostic codes
  %[1]s exports list <module>           list recorded signatures of a module
  %[1]s exports show <module> <symbol>  show one recorded signature
`, os.Args[0])
}

// loadOptions finds the options file for dir, or returns the defaults.
func loadOptions(dir string) (*config.Options, string, error) {
	path, err := config.FindOptions(dir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return config.DefaultOptions(), "", nil
	}
	opts, err := config.LoadOptions(path)
	return opts, path, err
}

func handleConfig() bool {
	if len(os.Args) < 2 || os.Args[1] != "config" {
		return false
	}
	dir := "."
	if len(os.Args) > 2 {
		dir = os.Args[2]
	}
	opts, path, err := loadOptions(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if path == "" {
		fmt.Println("# no options file found, using defaults")
	} else {
		fmt.Printf("# %s\n", path)
	}
	out, err := yaml.Marshal(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
	return true
}

func handleCodes() bool {
	if len(os.Args) < 2 || os.Args[1] != "codes" {
		return false
	}
	for _, code := range []diagnostics.ErrorCode{
		diagnostics.ErrR001, diagnostics.ErrR002, diagnostics.ErrR003, diagnostics.ErrR004, diagnostics.ErrR005,
	} {
		fmt.Printf("%s  %s\n", code, code.Description())
	}
	return true
}

func handleExports() bool {
	if len(os.Args) < 3 || os.Args[1] != "exports" {
		return false
	}

	opts, _, err := loadOptions(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	config.ConfigureLogging(opts)
	if opts.Exports.Database == "" {
		fmt.Fprintf(os.Stderr, "Error: exports.database is not set in %s\n", config.OptionsFileName)
		os.Exit(1)
	}

	store, err := exports.Open(opts.Exports.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	switch {
	case os.Args[2] == "list" && len(os.Args) == 4:
		sigs, err := store.List(ctx, os.Args[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		for _, sig := range sigs {
			printSignature(sig)
		}
	case os.Args[2] == "show" && len(os.Args) == 5:
		sig, err := store.Lookup(ctx, os.Args[3], os.Args[4])
		if errors.Is(err, exports.ErrSignatureNotFound) {
			fmt.Fprintf(os.Stderr, "%s.%s: no recorded signature\n", os.Args[3], os.Args[4])
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		printSignature(sig)
		fmt.Printf("  run %s\n", sig.RunID)
	default:
		usage()
		os.Exit(2)
	}
	return true
}

func printSignature(sig exports.Signature) {
	fmt.Printf("%s %s.%s {%s}\n", sig.Kind, sig.Module, sig.Symbol, strings.Join(sig.Regions, ", "))
}

func main() {
	// Keep rendered output free of terminal escapes under test harnesses.
	if os.Getenv(config.TestModeEnv) == "1" {
		config.IsTestMode = true
	}

	if handleConfig() || handleCodes() || handleExports() {
		return
	}
	usage()
	os.Exit(2)
}
