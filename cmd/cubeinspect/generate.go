package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"os"

	"github.com/k0sti/cube"
	"github.com/k0sti/cube/bcf"
)

func runGenerate(args []string) {
	var (
		depth  int
		seed   uint64
		output string
	)
	parseFlags("generate", args, func(fs *flag.FlagSet) {
		fs.IntVar(&depth, "depth", 4, "tree depth")
		fs.Uint64Var(&seed, "seed", 1, "PRNG seed")
		fs.StringVar(&output, "o", "cube.bcf", "output file path")
	})

	if depth < 0 || depth > 63 {
		fatalf("cubeinspect: depth %d out of range [0,63]", depth)
	}

	prng := rand.New(rand.NewPCG(seed, seed+1))
	root := cube.TabulateRecursive(uint8(depth), func(cube.CubeCoord) uint8 {
		return uint8(prng.IntN(256))
	})

	buf := bcf.Serialize(root)
	if err := os.WriteFile(output, buf, 0o644); err != nil {
		fatalf("cubeinspect: write %s: %v", output, err)
	}
	log.Printf("wrote %s: %d bytes, depth %d, seed %d", output, len(buf), depth, seed)
}
