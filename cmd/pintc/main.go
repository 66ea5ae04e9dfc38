package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/pintlang/pintc/internal/build"
	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/schema"
)

var (
	// Version info - set by ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		outDir      = flag.String("out", "build", "Directory to write compiled artifacts to")
		tmpDir      = flag.String("tmp", os.TempDir(), "Directory to synthesize dependency libraries under")
		compact     = flag.Bool("compact", false, "Write artifact JSON compact instead of pretty-printed")
	)

	flag.Parse()
	schema.SetCompactMode(*compact)

	if *versionFlag {
		printVersion()
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "build":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing entry-point argument\n", red("Error"))
			fmt.Println("Usage: pintc build <entry.pnt>")
			os.Exit(1)
		}
		buildEntry(flag.Arg(1), *outDir, *tmpDir)

	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing entry-point argument\n", red("Error"))
			fmt.Println("Usage: pintc check <entry.pnt>")
			os.Exit(1)
		}
		checkEntry(flag.Arg(1))

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("pintc %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("Built:  %s\n", BuildTime)
	}
}

func printHelp() {
	fmt.Println(bold("pintc - the predicate-language compiler"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pintc <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <entry>   Build a package graph rooted at entry, writing artifacts\n", green("build"))
	fmt.Printf("  %s <entry>   Parse and type-check without codegen\n", green("check"))
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

// buildEntry drives a single-node plan rooted at entry through the
// build driver. Parsing and type-checking are external collaborators
// (spec.md §1); this entry point is the seam a concrete frontend plugs
// into via extern.Parser/extern.TypeChecker.
func buildEntry(entry, outDir, tmpDir string) {
	plan := build.NewPlan("root")
	plan.AddNode(&build.Node{
		Key:      "root",
		Manifest: build.Manifest{Name: "root", Kind: build.Contract, EntryPoint: entry},
	})

	d := &build.Driver{ArtifactDir: outDir, TmpRoot: tmpDir}
	if d.Parser == nil || d.TypeChecker == nil {
		fmt.Fprintf(os.Stderr, "%s: no parser/type-checker frontend wired into this binary\n", yellow("Warning"))
		fmt.Println("pintc's core compiles an already-parsed, already-type-checked Contract;")
		fmt.Println("link a concrete extern.Parser and extern.TypeChecker to drive it end to end.")
		os.Exit(1)
	}

	h := diag.NewHandler()
	if _, err := d.Build(plan, h); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", green("Built"), entry)
}

func checkEntry(entry string) {
	fmt.Fprintf(os.Stderr, "%s: no parser/type-checker frontend wired into this binary\n", yellow("Warning"))
	fmt.Println("check needs the same external frontend build does; see `pintc build -help`.")
	_ = entry
	os.Exit(1)
}
