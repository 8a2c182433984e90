// Command chessmind-uci runs the engine behind the UCI text protocol.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chessmind/internal/engine"
	"github.com/hailam/chessmind/internal/uci"
)

func main() {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	depth := flag.Int("depth", uci.DefaultDepth, "default search depth when go has no limits")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	eng := engine.New(*depth)
	uci.New(eng).Run()
}
