// Hasher: a CPU-resident double-SHA-256 nonce search engine.
// Copyright (C) 2026  Guillermo Perry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hasher/internal/config"
	"hasher/internal/discovery"
	"hasher/internal/driver/host"
)

const portFile = "/tmp/hasher-host.port"

var (
	port          = flag.Int("port", 0, "HTTP API server port (0 = auto-find open port)")
	remoteWorkers = flag.String("remotes", "", "comma-separated hasher-server addresses to shard nonce ranges to")

	discoverNetwork  = flag.Bool("discover", false, "scan the local subnet for hasher-server instances at startup")
	discoverySubnet  = flag.String("subnet", "", "network subnet to scan (CIDR, empty = auto-detect)")
	discoveryPort    = flag.Int("discovery-port", 8545, "port to scan for hasher-server")
	discoveryTimeout = flag.Duration("discovery-timeout", 2*time.Second, "timeout for each server probe")
	skipLocalhost    = flag.Bool("skip-localhost", false, "skip localhost during discovery")
)

// writePortFile writes the port to a temporary file for the CLI to discover.
func writePortFile(port int) error {
	log.Printf("Writing port %d to %s", port, portFile)
	return os.WriteFile(portFile, []byte(fmt.Sprintf("%d", port)), 0644)
}

// cleanupPortFile removes the temporary port file.
func cleanupPortFile() {
	log.Printf("Cleaning up port file: %s", portFile)
	os.Remove(portFile)
}

func main() {
	flag.Parse()

	log.Printf("Hasher Host Orchestrator starting...")

	engineCfg, err := config.LoadEngineConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var remoteAddrs []string
	switch {
	case *remoteWorkers != "":
		remoteAddrs = splitAddrs(*remoteWorkers)
	case len(engineCfg.RemoteWorkers) > 0:
		remoteAddrs = engineCfg.RemoteWorkers
		log.Printf("Using %d remote worker(s) from configuration", len(remoteAddrs))
	}

	if *discoverNetwork {
		cfg := discovery.NewDiscoveryConfig()
		if *discoverySubnet != "" {
			cfg.Subnet = *discoverySubnet
		}
		cfg.Port = *discoveryPort
		cfg.Timeout = *discoveryTimeout
		cfg.SkipLocalhost = *skipLocalhost

		found, err := discovery.DiscoverServers(cfg)
		if err != nil {
			log.Printf("Warning: network discovery failed: %v", err)
		} else {
			responding := 0
			for _, d := range found {
				if d.Responding {
					remoteAddrs = append(remoteAddrs, d.Address)
					responding++
				}
			}
			log.Printf("Discovery found %d responding hasher-server instance(s)", responding)
		}
	}

	var remotes []*host.RemoteWorker
	for _, addr := range remoteAddrs {
		w, err := host.NewRemoteWorkerWithAddress(addr)
		if err != nil {
			log.Printf("Warning: skipping unreachable remote worker %s: %v", addr, err)
			continue
		}
		remotes = append(remotes, w)
	}

	orch, err := newOrchestrator(remotes)
	if err != nil {
		log.Fatalf("Failed to start orchestrator: %v", err)
	}

	listenPort := *port
	if listenPort == 0 {
		found, err := findOpenPort(9000)
		if err != nil {
			log.Fatalf("Failed to find open port: %v", err)
		}
		listenPort = found
	}
	if err := writePortFile(listenPort); err != nil {
		log.Printf("Warning: failed to write port file: %v", err)
	}
	defer cleanupPortFile()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api/v1")
	{
		api.POST("/mine", orch.handleMine)
		api.GET("/health", orch.handleHealth)
		api.GET("/metrics", orch.handleMetrics)
		api.GET("/workers", orch.handleWorkers)
		api.GET("/discovery", orch.handleDiscovery)
		api.POST("/discovery/scan", orch.handleDiscoveryScan)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", listenPort),
		Handler: router,
	}

	go func() {
		log.Printf("API server listening on :%d", listenPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	cleanupPortFile()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

func splitAddrs(value string) []string {
	var out []string
	for _, addr := range strings.Split(value, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// findOpenPort finds an available TCP port starting from startPort.
func findOpenPort(startPort int) (int, error) {
	for p := startPort; p < startPort+1000; p++ {
		addr := fmt.Sprintf(":%d", p)
		ln, err := net.Listen("tcp", addr)
		if err == nil {
			ln.Close()
			return p, nil
		}
	}
	return 0, fmt.Errorf("no open port found starting from %d", startPort)
}
