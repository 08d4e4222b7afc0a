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
	"strings"
	"time"

	"hasher/internal/client"
	"hasher/pkg/hashing/core"
	"hasher/pkg/hashing/factory"
)

var (
	headerHex  = flag.String("header", "", "hex-encoded 80-byte block header to mine (random if empty)")
	remote     = flag.String("remote", "", "hasher-server address to mine against (empty = mine locally)")
	tier       = flag.String("tier", "", "local method name to force (simd256, simd128, scalar; empty = best available)")
	nonceStart = flag.Uint64("nonce-start", 0, "first nonce to try")
	nonceEnd   = flag.Uint64("nonce-end", 0xFFFFFFFF, "last nonce to try")
	configPath = flag.String("config", "", "JSON hash-method config file (empty = first of factory.ConfigPaths() that exists, default preferences otherwise)")
	saveConfig = flag.Bool("save-config", false, "persist the detected method preferences to -config (or the first factory.ConfigPaths() entry) before mining")
)

func main() {
	flag.Parse()

	header, err := resolveHeader(*headerHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hasher-cli:", err)
		os.Exit(1)
	}

	if *nonceEnd > 0xFFFFFFFF || *nonceStart > *nonceEnd {
		fmt.Fprintln(os.Stderr, "hasher-cli: nonce-start must be <= nonce-end <= 4294967295")
		os.Exit(1)
	}

	start := time.Now()
	var (
		nonce uint32
		found bool
		via   string
	)

	if *remote != "" {
		nonce, found, err = mineRemote(header, uint32(*nonceStart), uint32(*nonceEnd), *remote)
		via = *remote
	} else {
		nonce, found, err = mineLocal(header, uint32(*nonceStart), uint32(*nonceEnd), *tier)
		via = "local"
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "hasher-cli:", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)

	fmt.Printf("header:   %s\n", hex.EncodeToString(header))
	fmt.Printf("via:      %s\n", via)
	fmt.Printf("elapsed:  %s\n", elapsed.Round(time.Millisecond))
	if found {
		fmt.Printf("found:    nonce %d\n", nonce)
	} else {
		fmt.Printf("found:    no solution in [%d, %d]\n", *nonceStart, *nonceEnd)
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

func mineLocal(header []byte, nonceStart, nonceEnd uint32, tierName string) (uint32, bool, error) {
	path := resolveConfigPath(*configPath)
	cfg, err := factory.LoadConfigFromFile(path)
	if err != nil {
		return 0, false, fmt.Errorf("loading config %s: %w", path, err)
	}

	methodFactory := factory.NewHashMethodFactory(cfg)
	defer methodFactory.ShutdownAll()

	method := methodFactory.GetBestMethod()
	if tierName != "" {
		method = methodFactory.GetMethod(tierName)
	}
	if method == nil {
		return 0, false, fmt.Errorf("no method available (tier %q)", tierName)
	}
	if err := method.Initialize(); err != nil {
		return 0, false, fmt.Errorf("initializing %s: %w", method.Name(), err)
	}

	if *saveConfig {
		report := methodFactory.GetDetectionReport()
		bestName := strings.TrimPrefix(report.BestMethod, "software-")
		saved := &factory.HashMethodConfig{
			PreferredOrder: []string{bestName},
			EnableFallback: true,
		}
		for _, status := range report.Methods {
			if status.Name != bestName {
				saved.PreferredOrder = append(saved.PreferredOrder, status.Name)
			}
		}
		if err := factory.SaveConfigToFile(saved, path); err != nil {
			fmt.Fprintf(os.Stderr, "hasher-cli: saving config to %s: %v\n", path, err)
		}
	}

	nonce, err := method.MineHeader(header, nonceStart, nonceEnd)
	if err != nil {
		return 0, false, err
	}

	canon := core.NewCanonicalSHA256()
	hash, err := canon.ComputeDoubleSHA256WithNonce(header, nonce)
	if err != nil {
		return 0, false, err
	}
	return nonce, canon.IsValidDifficulty1(hash), nil
}

// resolveConfigPath returns explicit when set, otherwise the first of
// factory.ConfigPaths() that exists on disk, otherwise ConfigPaths()'s
// first (user-home) entry so -save-config has somewhere to write.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	paths := factory.ConfigPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return paths[0]
}

func mineRemote(header []byte, nonceStart, nonceEnd uint32, addr string) (uint32, bool, error) {
	c := client.NewAPIClient(addr)
	resp, err := c.Mine(client.MineRequest{Header: header, NonceStart: nonceStart, NonceEnd: nonceEnd})
	if err != nil {
		return 0, false, err
	}
	return resp.Nonce, resp.Found, nil
}
