// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/pipeasm/assembler"
)

func main() {
	err := run(os.Args[0], os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// run assembles, or disassembles, as directed by the command line.
func run(name string, args []string, stdout io.Writer) (err error) {
	var output string
	var disassemble string
	var model string
	var verbose bool

	asm := &assembler.Assembler{}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.StringVar(&output, "o", "", "Output listing (default: input with .dat extension, - for stdout)")
	flags.StringVar(&disassemble, "d", "", ".dat listing to disassemble")
	flags.StringVar(&model, "m", assembler.HAZARD_AS_BUILT.String(), "Hazard model: as-built, destination")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.BoolVar(&asm.Linked, "link", false, "Re-encode label operands against the final label addresses")
	flags.Func("l", "Latency overrides: mnemonic=cycles[,...]", asm.SetLatencies)
	flags.Func("D", "Predefine an equate: NAME=VALUE", asm.SetPredefine)

	err = flags.Parse(args)
	if err != nil {
		return
	}

	if len(disassemble) != 0 {
		if flags.NArg() != 0 {
			err = fmt.Errorf("%v: Unknown arguments: %v", name, flags.Args())
			return
		}

		var inf *os.File
		inf, err = os.Open(disassemble)
		if err != nil {
			return
		}
		defer inf.Close()

		var prog *assembler.Program
		prog, err = assembler.ReadListing(inf)
		if err != nil {
			err = fmt.Errorf("%v: %w", disassemble, err)
			return
		}

		_, err = prog.WriteListing(stdout, true)
		return
	}

	if flags.NArg() != 1 {
		err = fmt.Errorf("usage: %v [flags] file.asm", name)
		return
	}
	input := flags.Arg(0)

	asm.Hazard, err = assembler.ParseHazardModel(model)
	if err != nil {
		err = fmt.Errorf("-m %v: %w", model, err)
		return
	}
	asm.Verbose = verbose

	inf, err := os.Open(input)
	if err != nil {
		return
	}
	defer inf.Close()

	// Assemble fully before creating the output, so errors leave no listing.
	prog, err := asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", input, err)
		return
	}

	if verbose {
		log.Printf("%v: %v words, %v padding", input, len(prog.Instructions), prog.Padding())
	}

	if output == "-" {
		_, err = prog.WriteListing(stdout, isTerminal(stdout))
		return
	}

	if len(output) == 0 {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".dat"
	}

	ouf, err := os.Create(output)
	if err != nil {
		return
	}

	_, err = prog.WriteTo(ouf)
	if err == nil {
		err = ouf.Close()
	} else {
		ouf.Close()
	}
	if err != nil {
		os.Remove(output)
		err = fmt.Errorf("%v: %w", output, err)
	}

	return
}
