package backend

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"smartspend/internal/config"
	"smartspend/internal/core"
	"smartspend/internal/ledger/memory"
	"smartspend/internal/log"
	"smartspend/internal/storage"
)

func quietLogger() *log.Logger {
	return log.New(log.Config{Output: &bytes.Buffer{}})
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
	_, err := FromAppConfig(&config.Config{DataBackend: "sheets"})
	if err == nil || !strings.Contains(err.Error(), "[sqlite memory]") {
		t.Errorf("expected error listing valid backends, got %v", err)
	}
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "x.db" {
		t.Fatalf("unexpected backend config: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite with path", Config{Type: SQLiteBackend, SQLiteDBPath: "a.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"memory", Config{Type: MemoryBackend}, false},
		{"unknown", Config{Type: "sheets"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetBackendTypes(t *testing.T) {
	types := GetBackendTypes()
	if len(types) != 2 {
		t.Fatalf("unexpected backend types %v", types)
	}
	for _, bt := range types {
		if !bt.IsValid() {
			t.Errorf("listed backend %q is not valid", bt)
		}
	}
}

func TestCreateBackend_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")
	res, err := NewFactory(quietLogger()).CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: path})
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	defer res.Store.Close()

	if _, ok := res.Store.(*storage.SQLiteRepository); !ok {
		t.Fatalf("expected SQLite repository, got %T", res.Store)
	}
	e, _ := core.NewEntry("1", "a", "b")
	if _, err := res.Store.Append(ctx, e); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func TestCreateBackend_Memory(t *testing.T) {
	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	if _, ok := res.Store.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", res.Store)
	}
	if err := res.Store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestCreateBackend_Invalid(t *testing.T) {
	if _, err := NewFactory(quietLogger()).CreateBackend(context.Background(), Config{Type: "nope"}); err == nil {
		t.Fatal("expected error")
	}
}
