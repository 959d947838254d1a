// Package main provides the entry point for mipssim, a MIPS32 functional
// simulator augmented with a microarchitectural analyzer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/mipssim/analysis"
	"github.com/sarchlab/mipssim/core"
	"github.com/sarchlab/mipssim/decode"
	"github.com/sarchlab/mipssim/loader"
)

var (
	configPath     = flag.String("config", "", "Path to analyzer configuration JSON file")
	verbose        = flag.Bool("v", false, "Verbose output")
	maxInstructions = flag.Int("max-instructions", 10_000_000, "Abort after this many retired instructions (runaway guard)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: mipssim [options] <program.elf>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Entry point: 0x%X\n", prog.EntryPoint)
		fmt.Printf("Segments: %d\n", len(prog.Segments))
	}

	cfg := analysis.DefaultConfig()
	if *configPath != "" {
		cfg, err = analysis.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading analyzer config: %v\n", err)
			os.Exit(1)
		}
	}

	exitCode := run(prog, cfg)
	os.Exit(exitCode)
}

// run loads prog into a fresh machine, retires instructions one at a time
// until the program signals stop, a fatal condition terminates it, or
// *maxInstructions is exceeded, feeding every retired instruction to the
// analyzer, then prints the end-of-run report.
func run(prog *loader.Program, cfg analysis.Config) int {
	mem := core.NewMemory()
	loader.LoadInto(mem, prog)

	m := core.NewMachine(core.WithMemory(mem))
	m.Begin(0)
	m.SetEntry(prog.EntryPoint)

	a := analysis.NewAnalyzerWithConfig(cfg)

	for i := 0; i < *maxInstructions; i++ {
		pc := m.State.PC
		raw := mem.ReadWord(pc)
		w := decode.Decode(raw)

		var inst core.Instruction
		var execErr error
		switch w.Format {
		case core.FormatR:
			inst, execErr = m.ExecuteR(w.Rs, w.Rt, w.Rd, w.Shamt, w.Funct)
		case core.FormatJ:
			inst, execErr = m.ExecuteJ(w.Op, w.Target26)
		default:
			inst, execErr = m.ExecuteI(w.Op, w.Rs, w.Rt, w.Imm16)
		}

		a.Push(inst, m.State)

		if execErr != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", execErr)
			printReport(a)
			return 1
		}
		if m.Stopped() {
			break
		}
	}

	printReport(a)
	return 0
}

func printReport(a *analysis.Analyzer) {
	report := a.Report()
	if err := report.Write(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error writing report: %v\n", err)
	}
}
