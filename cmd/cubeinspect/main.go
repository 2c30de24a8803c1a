// Command cubeinspect generates sample cube trees and inspects BCF files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(os.Args[2:])
	case "dump":
		runDump(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cubeinspect <generate|dump> [flags]")
}

func fatalf(format string, args ...any) {
	log.Printf(format, args...)
	os.Exit(1)
}

func parseFlags(name string, args []string, setup func(*flag.FlagSet)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	setup(fs)
	fs.Parse(args)
	return fs
}
