package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	staticconfig "trapzone/internal/adapter/config/static"
	"trapzone/internal/app/script"
	"trapzone/internal/domain/hunting"
)

func main() {
	var (
		scriptPath string
		configPath string
		seed       int64
	)
	flag.StringVar(&scriptPath, "script", "", "scenario script to run")
	flag.StringVar(&configPath, "config", os.Getenv("TRAPZONE_CONFIG"), "JSON game configuration")
	flag.Int64Var(&seed, "seed", 0, "rng seed (overrides the config file; a seed statement in the script wins)")
	flag.Parse()

	if scriptPath == "" {
		log.Fatal("missing -script")
	}
	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	cfg, err := buildConfig(configPath, seed, seedSet)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	prog, err := script.ParseFile(scriptPath)
	if err != nil {
		log.Fatalf("parse script: %v", err)
	}
	os.Exit(run(cfg, prog, os.Stdout))
}

func buildConfig(path string, seed int64, seedSet bool) (hunting.Config, error) {
	cfg := hunting.DefaultConfig()
	if path != "" {
		loaded, err := staticconfig.LoadFile(path, cfg)
		if err != nil {
			return hunting.Config{}, err
		}
		cfg = loaded
	}
	if seedSet {
		cfg.Seed = seed
	}
	return cfg, nil
}

// run plays prog and returns the process exit code.
func run(cfg hunting.Config, prog *script.Script, out io.Writer) int {
	res, err := script.Runner{Config: cfg, Out: out}.Run(prog)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return 2
	}
	fmt.Fprintf(out, "%d command(s), %d rejected\n", res.Executed, res.Rejected)
	if res.Passed() {
		return 0
	}
	for _, f := range res.Failures {
		fmt.Fprintf(out, "FAIL %s\n", f)
	}
	return 1
}
