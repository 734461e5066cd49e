package main

import (
	"log"
	"os"
	"runtime/pprof"

	"github.com/robinovitch61/uiscroll/cmd"
)

func main() {
	if cpuProfile := os.Getenv("UISCROLL_CPU_PROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
