package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"college-admin/backend/config"
	"college-admin/backend/internal/store"
)

func TestOpen_MixedMemoryAndLocal(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{
			Driver: config.DriverMemory,
			Collections: map[string]string{
				store.Courses:  config.DriverLocal,
				store.Tasks:    config.DriverLocal,
				store.Messages: config.DriverLocal,
			},
			Local: config.LocalStoreConfig{
				Backend:  config.LocalBackendBolt,
				BoltPath: filepath.Join(t.TempDir(), "local.db"),
			},
		},
	}

	s, err := Open(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Open 应成功: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for _, name := range config.Collections {
		if _, err := s.Collection(name).List(ctx); err != nil {
			t.Errorf("集合 %s List 应成功: %v", name, err)
		}
	}

	if err := s.Collection(store.Courses).Put(ctx, "101", []byte(`{"courseCode":"101"}`)); err != nil {
		t.Fatalf("Put 应成功: %v", err)
	}
	if _, err := s.Collection(store.Courses).Get(ctx, "101"); err != nil {
		t.Errorf("Get 应成功: %v", err)
	}
}

func TestRouter_UnknownCollection(t *testing.T) {
	s, err := Open(&config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}}, zap.NewNop())
	if err != nil {
		t.Fatalf("Open 应成功: %v", err)
	}
	if _, err := s.Collection("lecturers").List(context.Background()); err == nil {
		t.Error("未配置的集合应返回错误")
	}
}
