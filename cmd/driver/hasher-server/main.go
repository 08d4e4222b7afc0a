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
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hasher/internal/config"
	"hasher/pkg/hashing/factory"
)

var (
	port     = flag.Int("port", 0, "HTTP server port (0 = use configured/default port)")
	workerID = flag.String("worker-id", "", "worker identity reported in /v1/capabilities (empty = hostname)")
)

// preferredOrder puts tier first in the factory's default preference
// order, moving it to the front if already present. An unrecognized
// tier name is left for the factory's own detection to ignore.
func preferredOrder(tier string) []string {
	base := factory.DefaultHashMethodConfig().PreferredOrder
	order := []string{tier}
	for _, name := range base {
		if name != tier {
			order = append(order, name)
		}
	}
	return order
}

// configureFirewall opens port for incoming connections via iptables if
// present. Failure is non-fatal: the host may not grant permission, or
// may not need the rule at all.
func configureFirewall(port int) error {
	if _, err := exec.LookPath("iptables"); err != nil {
		log.Printf("iptables not found, skipping firewall configuration")
		return nil
	}

	cmd := exec.Command("iptables", "-L", "INPUT", "-n")
	output, err := cmd.Output()
	if err == nil && len(output) > 0 {
		rule := fmt.Sprintf("dpt:%d", port)
		for _, line := range strings.Split(string(output), "\n") {
			if strings.Contains(line, rule) && strings.Contains(line, "ACCEPT") {
				log.Printf("Firewall rule for port %d already exists", port)
				return nil
			}
		}
	}

	cmd = exec.Command("iptables", "-I", "INPUT", "-p", "tcp", "--dport", fmt.Sprintf("%d", port), "-j", "ACCEPT")
	if output, err := cmd.CombinedOutput(); err != nil {
		log.Printf("Warning: Failed to configure firewall rule: %v (output: %s)", err, output)
		return nil
	}

	log.Printf("Configured firewall to accept connections on port %d", port)
	return nil
}

func main() {
	flag.Parse()

	cfg, err := config.LoadEngineConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	listenPort := *port
	if listenPort == 0 {
		listenPort = cfg.HTTPPort
	}

	id := *workerID
	if id == "" {
		if h, err := os.Hostname(); err == nil {
			id = h
		} else {
			id = "hasher-server"
		}
	}

	log.Printf("Hasher Server starting on port %d (worker %s, preferred tier %s)...", listenPort, id, cfg.PreferredTier)

	if err := configureFirewall(listenPort); err != nil {
		log.Printf("Warning: Firewall configuration failed: %v", err)
	}

	methodFactory := factory.NewHashMethodFactory(&factory.HashMethodConfig{
		PreferredOrder: preferredOrder(cfg.PreferredTier),
		EnableFallback: true,
	})
	if err := methodFactory.InitializeBestMethod(); err != nil {
		log.Fatalf("Failed to initialize best hash method: %v", err)
	}
	defer methodFactory.ShutdownAll()

	report := methodFactory.GetDetectionReport()
	log.Printf("Best method: %s (%d/%d tiers available)", report.BestMethod, report.AvailableCount, report.TotalMethods)

	srv := newServer(methodFactory, id)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", srv.handleHealth)
	router.GET("/v1/capabilities", srv.handleCapabilities)
	router.POST("/v1/mine", srv.handleMine)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", listenPort),
		Handler: router,
	}

	go func() {
		log.Printf("Hasher HTTP server listening on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
