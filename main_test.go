package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/otherjamesbrown/zoomchat/config"
	pferrors "github.com/otherjamesbrown/zoomchat/pkg/errors"
)

func TestVersionCommand(t *testing.T) {
	if versionCmd == nil {
		t.Fatal("versionCmd is nil")
	}

	if versionCmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", versionCmd.Use)
	}

	if versionCmd.Short != "Print version information" {
		t.Errorf("Unexpected Short: %s", versionCmd.Short)
	}
}

func TestVersionOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	outputFormat = "json"
	defer func() { outputFormat = "" }()

	if err := versionCmd.RunE(versionCmd, nil); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	var info map[string]string
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("version --output json is not valid JSON: %v\n%s", err, buf.String())
	}
	if info["name"] != "zoomchat" {
		t.Errorf("name = %q, want zoomchat", info["name"])
	}
	if info["version"] == "" {
		t.Error("version should not be empty")
	}
}

func TestVersionOutputText(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	if err := versionCmd.RunE(versionCmd, nil); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "zoomchat ") {
		t.Errorf("unexpected version output: %q", buf.String())
	}
}

func TestRootCommands(t *testing.T) {
	expected := []string{"scan", "students", "messages", "stats", "config", "completion", "version"}

	for _, name := range expected {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"output", "log-format", "indent", "counter", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag not found on root command", name)
		}
	}
}

func TestSetConfigValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		check   func(*config.CLIConfig) bool
		wantErr bool
	}{
		{"output_format", "json", func(c *config.CLIConfig) bool { return c.OutputFormat == config.OutputFormatJSON }, false},
		{"output_format", "xml", nil, true},
		{"debug", "true", func(c *config.CLIConfig) bool { return c.Debug }, false},
		{"debug", "maybe", nil, true},
		{"transcript.indent", "tab", func(c *config.CLIConfig) bool { return c.Transcript.Indent == "tab" }, false},
		{"transcript.counter_mode", "file", func(c *config.CLIConfig) bool { return c.Transcript.CounterMode == "file" }, false},
		{"metrics_textfile", "~/zoomchat.prom", func(c *config.CLIConfig) bool { return c.MetricsTextfile == "~/zoomchat.prom" }, false},
		{"events.enabled", "1", func(c *config.CLIConfig) bool { return c.Events.Enabled }, false},
		{"events.address", "redis:6379", func(c *config.CLIConfig) bool { return c.Events.Address == "redis:6379" }, false},
		{"events.db", "2", func(c *config.CLIConfig) bool { return c.Events.DB == 2 }, false},
		{"events.db", "two", nil, true},
		{"events.channel", "scans", func(c *config.CLIConfig) bool { return c.Events.Channel == "scans" }, false},
		{"server_address", "localhost:1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := config.DefaultConfig()
			err := setConfigValue(cfg, tt.key, tt.value)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !pferrors.IsValidation(err) {
					t.Errorf("error should be a validation error: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("%s was not applied", tt.key)
			}
		})
	}
}

func TestShowConfig_RedactsPassword(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputFormat = config.OutputFormatJSON
	cfg.Events.Password = "s3cret"

	var buf bytes.Buffer
	if err := showConfig(&buf, "/tmp/config.yaml", cfg); err != nil {
		t.Fatalf("showConfig failed: %v", err)
	}
	if strings.Contains(buf.String(), "s3cret") {
		t.Error("config show must not print the Redis password")
	}
	if cfg.Events.Password != "s3cret" {
		t.Error("showConfig must not modify the config")
	}
}

func TestShowConfig_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := showConfig(&buf, "/tmp/config.yaml", config.DefaultConfig()); err != nil {
		t.Fatalf("showConfig failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"/tmp/config.yaml", "Counter mode:     scan", "Metrics textfile: (not set)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, pferrors.ErrParticipantNotFound)

	out := buf.String()
	if !strings.Contains(out, "Error: participant not found") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "Hint: List the participants") {
		t.Errorf("expected a hint, got %q", out)
	}

	buf.Reset()
	reportError(&buf, errors.New("boom"))
	if strings.Contains(buf.String(), "Hint:") {
		t.Errorf("unknown errors should not carry a hint: %q", buf.String())
	}
}
