package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFileRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "cutaway.log")

	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1, // smallest size lumberjack allows
		MaxBackups: 2,
		MaxAgeDays: 1,
	}
	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { Use(nil) })

	payload := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("plane update %d: %s", i, payload)
	}
	Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}

	var rotated int
	for _, e := range entries {
		name := e.Name()
		if name == "cutaway.log" {
			continue
		}
		if strings.HasPrefix(name, "cutaway-20") && strings.HasSuffix(name, ".log") {
			rotated++
		}
	}
	if rotated == 0 {
		t.Errorf("expected a rotated log file, found %d entries", len(entries))
	}
}

func TestLevels(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
		{level: "bogus", expected: []string{"INFO"}, excluded: []string{"DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, tt.level+".log")
			if err := InitWithFileConfig(tt.level, FileConfig{Path: logFile, MaxSizeMB: 10}, false); err != nil {
				t.Fatalf("init: %v", err)
			}
			t.Cleanup(func() { Use(nil) })

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			out := string(content)
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("expected %s in output", want)
				}
			}
			for _, not := range tt.excluded {
				if strings.Contains(out, not) {
					t.Errorf("unexpected %s in output for level %s", not, tt.level)
				}
			}
		})
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/cutaway.log")

	if cfg.Path != "/tmp/cutaway.log" {
		t.Errorf("Path = %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 50 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 7 {
		t.Errorf("unexpected limits: %+v", cfg)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}

func TestNopBeforeInit(t *testing.T) {
	Use(nil)
	// Must not panic without Init.
	Info("discarded", zap.Int("axis", 1))
	Named("clipping").Debug("discarded")
	Sync()
}

func TestUseAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core))
	t.Cleanup(func() { Use(nil) })

	Named("clipping").Warn("leaf skipped", zap.String("leaf", "bolt"))

	entries := logs.FilterMessage("leaf skipped").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].LoggerName != "clipping" {
		t.Errorf("LoggerName = %q, want clipping", entries[0].LoggerName)
	}
	if entries[0].ContextMap()["leaf"] != "bolt" {
		t.Errorf("leaf field = %v", entries[0].ContextMap()["leaf"])
	}
}
