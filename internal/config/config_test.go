package config

import (
	"reflect"
	"testing"
)

func TestParseBrokers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"single", "localhost:9092", []string{"localhost:9092"}},
		{"multiple with spaces", "kafka-1:9092, kafka-2:9092 ,kafka-3:9092", []string{"kafka-1:9092", "kafka-2:9092", "kafka-3:9092"}},
		{"trailing comma", "localhost:9092,", []string{"localhost:9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseBrokers(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseBrokers(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SEED_DATA", "")

	cfg := LoadConfig()
	if cfg.Port != "8080" {
		t.Errorf("port: got %q, want 8080", cfg.Port)
	}
	if !cfg.SeedData {
		t.Error("expected seeding to default on")
	}
}

func TestLoadConfigDisablesSeeding(t *testing.T) {
	t.Setenv("SEED_DATA", "false")

	cfg := LoadConfig()
	if cfg.SeedData {
		t.Error("expected SEED_DATA=false to disable seeding")
	}
}
