// Hasher: a CPU-resident double-SHA-256 nonce search engine.
// Copyright (C) 2026  Guillermo Perry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hasher/pkg/hashing/hardware"
	"hasher/pkg/simdsha256"
)

var (
	headerHexFlag = flag.String("header", "", "hex-encoded 80-byte block header to search (random if empty)")
	tierFlag      = flag.String("tier", "auto", "search tier: auto, simd256, simd128, scalar")
)

// reportThreshold mirrors simdsha256's own batching interval: the
// monitor reports progress at the same cadence the search core invokes
// ProgressCallback, so the dashboard's hash-rate sampling lines up with
// real cancellation latency.
const reportThreshold = 1 << 16

func main() {
	flag.Parse()

	header, err := resolveHeader(*headerHexFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "monitor:", err)
		os.Exit(1)
	}

	tier, err := resolveTier(*tierFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "monitor:", err)
		os.Exit(1)
	}

	inputs, err := hardware.BuildSearchInputs(header)
	if err != nil {
		fmt.Fprintln(os.Stderr, "monitor: building search inputs:", err)
		os.Exit(1)
	}

	model := newModel(hex.EncodeToString(header), tier)
	program := tea.NewProgram(model, tea.WithAltScreen())

	var cancelled atomic.Bool

	go runSearch(program, inputs, tier, &cancelled)

	finalModel, err := program.Run()
	cancelled.Store(true)
	if err != nil {
		fmt.Fprintln(os.Stderr, "monitor:", err)
		os.Exit(1)
	}

	if m, ok := finalModel.(dashboardModel); ok && m.found {
		fmt.Printf("found nonce %d after %d hashes\n", m.foundNonce, m.hashesDone)
	}
}

func resolveHeader(headerHex string) ([]byte, error) {
	if headerHex == "" {
		header := make([]byte, 80)
		if _, err := rand.Read(header); err != nil {
			return nil, fmt.Errorf("generating random header: %w", err)
		}
		return header, nil
	}

	header, err := hex.DecodeString(headerHex)
	if err != nil {
		return nil, fmt.Errorf("decoding -header: %w", err)
	}
	if len(header) != 80 {
		return nil, fmt.Errorf("-header must decode to exactly 80 bytes, got %d", len(header))
	}
	return header, nil
}

func resolveTier(name string) (simdsha256.Tier, error) {
	switch name {
	case "auto":
		return simdsha256.Probe().BestTier(), nil
	case "simd256":
		return simdsha256.TierSIMD256, nil
	case "simd128":
		return simdsha256.TierSIMD128, nil
	case "scalar":
		return simdsha256.TierScalar, nil
	default:
		return simdsha256.TierScalar, fmt.Errorf("unknown -tier %q (want auto, simd256, simd128, or scalar)", name)
	}
}

// runSearch drives the search core at the chosen tier, posting progress
// and a final result to the bubbletea program over Send. It owns no UI
// state directly — the model's Update is the only place that mutates
// the dashboard.
func runSearch(program *tea.Program, inputs simdsha256.SearchInputs, tier simdsha256.Tier, cancelled *atomic.Bool) {
	start := time.Now()

	progress := func(hashCount uint32) bool {
		program.Send(progressMsg{hashCount: hashCount, elapsed: time.Since(start)})
		return !cancelled.Load()
	}

	var out simdsha256.SearchOutput
	switch tier {
	case simdsha256.TierSIMD256:
		out = simdsha256.Search8(inputs, progress)
	case simdsha256.TierSIMD128:
		out = simdsha256.Search4(inputs, progress)
	default:
		out = scalarSearchWithProgress(inputs, progress)
	}

	program.Send(doneMsg{output: out, cancelled: cancelled.Load(), elapsed: time.Since(start)})
}
