package main

import (
	"flag"
	"os"

	"github.com/k0sti/cube/bcf"
)

func runDump(args []string) {
	var input string
	parseFlags("dump", args, func(fs *flag.FlagSet) {
		fs.StringVar(&input, "f", "cube.bcf", "BCF file path")
	})

	data, err := os.ReadFile(input)
	if err != nil {
		fatalf("cubeinspect: read %s: %v", input, err)
	}

	r, err := bcf.NewReader(data)
	if err != nil {
		fatalf("cubeinspect: %s: %v", input, err)
	}

	if err := r.Dump(os.Stdout); err != nil {
		fatalf("cubeinspect: dump %s: %v", input, err)
	}
}
