package repository

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/config"
	"github.com/ashwinyue/fractools/internal/store"
)

func TestOpen_SelectsLocalMode(t *testing.T) {
	tests := []struct {
		name   string
		remote config.RemoteConfig
	}{
		{name: "nothing configured"},
		{name: "url without key", remote: config.RemoteConfig{URL: "postgres://db.example.com/tools"}},
		{name: "key without url", remote: config.RemoteConfig{Key: "secret"}},
		{name: "placeholder url", remote: config.RemoteConfig{URL: config.PlaceholderRemoteURL, Key: "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Remote: tt.remote}
			cfg.Local.Driver = store.DriverMemory

			gw, err := Open(context.Background(), cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer gw.Close()

			if gw.Mode() != ModeLocal {
				t.Errorf("Mode() = %q, want local", gw.Mode())
			}
			groups, _ := gw.FetchGroups(context.Background())
			if len(groups) != 3 {
				t.Errorf("expected seed groups, got %d", len(groups))
			}
		})
	}
}

func TestOpen_UnknownLocalDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Local.Driver = "leveldb"

	if _, err := Open(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpen_SQLiteSnapshotSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.Local.Driver = store.DriverSQLite
	cfg.Local.Path = t.TempDir() + "/fractools.db"

	gw, err := Open(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := gw.DeleteGroup(ctx, "g2"); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	gw, err = Open(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer gw.Close()

	groups, _ := gw.FetchGroups(ctx)
	if len(groups) != 2 || groups[0].ID != "g1" || groups[1].ID != "g3" {
		t.Errorf("groups after restart = %+v", groups)
	}
}
