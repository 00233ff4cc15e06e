package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/pkoopman/draughtsplay/internal/engine"
	"github.com/pkoopman/draughtsplay/internal/hub"
)

var (
	depth      = flag.Int("depth", 10, "default search depth")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	eng := engine.NewEngine(*depth)

	protocol := hub.New(eng)
	protocol.Run()
}
