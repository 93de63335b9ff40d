package main

import (
	"testing"
)

func TestParseFlagsLeavesUnsetFlagsNil(t *testing.T) {
	overrides, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}

	if overrides.ConfigFile != "" {
		t.Fatalf("expected no config file, got %q", overrides.ConfigFile)
	}
	if overrides.Port != nil || overrides.LogLevel != nil || overrides.ProductCount != nil ||
		overrides.ShelfCount != nil || overrides.ShelfCapacity != nil || overrides.Seed != nil {
		t.Fatalf("expected unset flags to stay nil, got %+v", overrides)
	}
	if overrides.RateLimitRPS != nil || overrides.RateLimitBurst != nil {
		t.Fatalf("expected rate limit overrides to stay nil")
	}
}

func TestParseFlagsAppliesValues(t *testing.T) {
	overrides, err := parseFlags([]string{
		"--config", "shelfplan.yaml",
		"--port", "9091",
		"--log-level", "debug",
		"--products", "40",
		"--shelves", "3",
		"--capacity", "25",
		"--seed", "0",
		"--rate-limit-rps", "0",
		"--rate-limit-burst", "4",
	})
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}

	if overrides.ConfigFile != "shelfplan.yaml" {
		t.Fatalf("unexpected config file %q", overrides.ConfigFile)
	}
	if overrides.Port == nil || *overrides.Port != "9091" {
		t.Fatalf("expected port override")
	}
	if overrides.LogLevel == nil || *overrides.LogLevel != "debug" {
		t.Fatalf("expected log level override")
	}
	if overrides.ProductCount == nil || *overrides.ProductCount != 40 {
		t.Fatalf("expected product count override")
	}
	if overrides.ShelfCount == nil || *overrides.ShelfCount != 3 {
		t.Fatalf("expected shelf count override")
	}
	if overrides.ShelfCapacity == nil || *overrides.ShelfCapacity != 25 {
		t.Fatalf("expected capacity override")
	}
	if overrides.Seed == nil || *overrides.Seed != 0 {
		t.Fatalf("expected an explicit zero seed to be kept")
	}
	if overrides.RateLimitRPS == nil || *overrides.RateLimitRPS != 0 {
		t.Fatalf("expected rate limit rps override of 0")
	}
	if overrides.RateLimitBurst == nil || *overrides.RateLimitBurst != 4 {
		t.Fatalf("expected burst override")
	}
}

func TestParseFlagsRejectsBadValues(t *testing.T) {
	if _, err := parseFlags([]string{"--shelves", "many"}); err == nil {
		t.Fatalf("expected error for non-numeric shelves")
	}
	if _, err := parseFlags([]string{"--unknown"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}
