// seedsearch: GPU/CPU boot-seed search tool for Pokemon Black/White/Black2/White2
// Copyright (C) 2026  Guillermo Perry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"seedhunter/internal/config"
	"seedhunter/internal/derive"
	"seedhunter/internal/gpuengine"
	"seedhunter/internal/gpuengine/software"
	"seedhunter/internal/logging"
	"seedhunter/internal/orchestrator"
	"seedhunter/internal/scanner"
)

var (
	configPath  = flag.String("config", "", "path to a JSON search configuration (empty = built-in defaults)")
	profileName = flag.String("profile", "", "named ds_configs profile to use (empty = SEEDHUNTER_PROFILE, or the file's only profile)")
	kernelName  = flag.String("kernel", "software", "compute backend: software or gpu")
	keysFlag    = flag.String("keys", "0", "comma-separated list of key-press bitmasks to scan, e.g. 0,1,256")
	outputPath  = flag.String("output", "", "write results as JSON to this path (empty = stdout)")
	naturesArg  = flag.String("natures", "", "comma-separated nature names to additionally search for past each IV-matching seed, e.g. Adamant,Jolly")
	maxFrames   = flag.Uint("max-frames", 500, "how many frames past the boot offset to search for a matching nature")
)

// Result pairs a boot-seed candidate with the event-frame windows, if any,
// it matched past the boot offset.
type Result struct {
	gpuengine.Candidate
	Matches []scanner.WindowMatch `json:"matches,omitempty"`
}

func main() {
	flag.Parse()

	cfgs, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedsearch: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config{Level: cfgs.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedsearch: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("received shutdown signal, cancelling in-flight batches")
		cancel()
	}()

	if err := run(ctx, cfgs, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Configs, logger *logging.Logger) error {
	profile, err := cfg.Profile(*profileName)
	if err != nil {
		return fmt.Errorf("seedsearch: %w", err)
	}
	dsConfig, err := profile.BuildDSConfig()
	if err != nil {
		return fmt.Errorf("seedsearch: %w", err)
	}
	dateRange, err := cfg.BuildRange()
	if err != nil {
		return fmt.Errorf("seedsearch: %w", err)
	}
	offsetRecipe, err := config.ParseOffsetRecipe(cfg.OffsetRecipe)
	if err != nil {
		return fmt.Errorf("seedsearch: %w", err)
	}
	wrap := config.ParseWeekdayWrap(cfg.WeekdayWrap)
	ivMin, ivMax := cfg.BuildIVRectangle()

	keys, err := parseKeys(*keysFlag)
	if err != nil {
		return fmt.Errorf("seedsearch: %w", err)
	}
	natures, err := parseNatures(*naturesArg)
	if err != nil {
		return fmt.Errorf("seedsearch: %w", err)
	}

	kernel, err := buildKernel(cfg)
	if err != nil {
		return fmt.Errorf("seedsearch: %w", err)
	}
	logger.Info("kernel=%s workers=%d run=%s", kernel.Name(), cfg.Workers, logger.RunID)

	moments := dateRange.Moments()
	logger.Info("scanning %d moments x %d key states, offset=%s", len(moments), len(keys), cfg.OffsetRecipe)

	o := orchestrator.New(kernel)
	o.BatchSize = cfg.BatchSize
	o.PipelineDepth = cfg.PipelineDepth
	o.Logger = logger

	filter := gpuengine.Filter{P: cfg.FrameOffset, Min: ivMin, Max: ivMax}

	scan := func(c gpuengine.Candidate) scanner.Config {
		sc := scanner.Config{Seed0: c.Seed0, Offset: offsetRecipe}
		if len(natures) > 0 {
			sc.Nature = &scanner.NatureWindow{Min: 1, Max: uint32(*maxFrames), Targets: natures}
		}
		return sc
	}

	start := time.Now()
	scanned, err := o.RunWithScanner(ctx, dsConfig, dateRange, keys, wrap, filter, scan)
	if err != nil {
		return fmt.Errorf("seedsearch: %w", err)
	}
	logger.Info("scan finished in %s: %d candidates", time.Since(start), len(scanned))

	results := make([]Result, 0, len(scanned))
	for _, c := range scanned {
		results = append(results, Result{Candidate: c.Candidate, Matches: c.Matches})
	}

	return writeResults(results, *outputPath)
}

// buildKernel selects and constructs the compute backend named by
// cfg/--kernel. The GPU backend needs an already-acquired wgpu.Device and
// Queue, which this CLI does not attempt to acquire itself (see
// internal/gpuengine.GPUKernel's doc comment); asking for it here is a
// configuration error until a hosting process wires a device in.
func buildKernel(cfg *config.Configs) (gpuengine.Kernel, error) {
	switch *kernelName {
	case "", "software":
		workers := cfg.Workers
		if workers <= 0 {
			if n, err := cpu.Counts(true); err == nil && n > 0 {
				workers = n
			}
		}
		return software.New(workers), nil
	case "gpu":
		return nil, fmt.Errorf("gpu kernel requires a host-acquired wgpu.Device; run via a host that constructs gpuengine.NewGPUKernel directly")
	default:
		return nil, fmt.Errorf("unknown kernel %q", *kernelName)
	}
}

func parseKeys(s string) ([]uint16, error) {
	var keys []uint16
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var v uint64
		if _, err := fmt.Sscanf(part, "%d", &v); err != nil {
			return nil, fmt.Errorf("invalid key value %q: %w", part, err)
		}
		keys = append(keys, uint16(v))
	}
	if len(keys) == 0 {
		keys = []uint16{0}
	}
	return keys, nil
}

func parseNatures(s string) ([]derive.Nature, error) {
	var natures []derive.Nature
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, ok := derive.ParseNature(part)
		if !ok {
			return nil, fmt.Errorf("unknown nature %q", part)
		}
		natures = append(natures, n)
	}
	return natures, nil
}

func writeResults(results []Result, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("seedsearch: encode results: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("seedsearch: write %s: %w", path, err)
	}
	return nil
}
