package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/tuannm99/novapool/internal"
	"github.com/tuannm99/novapool/internal/bufferpool"
	"github.com/tuannm99/novapool/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults apply when empty)")
	frames := flag.Int("frames", 0, "Override bufferpool.capacity")
	pages := flag.Int("pages", 32, "Number of pages the workload allocates")
	dump := flag.Bool("dump", true, "Print the frame table before shutdown")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *frames > 0 {
		cfg.BufferPool.Capacity = *frames
	}

	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Storage.Workdir, storage.FileMode0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	file, err := storage.OpenDiskFile(storage.NewStorageManager(), storage.LocalFileSet{
		Dir:  cfg.Storage.Workdir,
		Base: cfg.Storage.File,
	})
	if err != nil {
		log.Fatalf("Failed to open page file: %v", err)
	}

	pool := bufferpool.NewManager(cfg.BufferPool.Capacity, logger)
	slog.Info("novapool started",
		"app", cfg.AppName,
		"file", file.Name(),
		"frames", pool.Capacity(),
	)

	if err := run(pool.View(file), *pages); err != nil {
		slog.Error("workload failed", "err", err)
	}

	if *dump {
		fmt.Print(pool.DumpString())
	}

	if err := pool.Close(); err != nil {
		log.Fatalf("Failed to flush buffer pool: %v", err)
	}
	if err := file.Close(); err != nil {
		log.Fatalf("Failed to close page file: %v", err)
	}
	slog.Info("novapool stopped", "pages", file.PageCount())
}

func loadConfig(path string) (*internal.NovaPoolConfig, error) {
	if path == "" {
		return internal.DefaultConfig()
	}
	return internal.LoadConfig(path)
}

// run allocates n pages, stamps each, then reads every page back through the
// pool. Each fetch is released before the next one, so any pool size >= 1 works.
func run(pager bufferpool.Pager, n int) error {
	ids := make([]storage.PageID, 0, n)
	for i := range n {
		id, h, err := pager.Allocate()
		if err != nil {
			return fmt.Errorf("allocate #%d: %w", i, err)
		}
		copy(h.Data(), fmt.Sprintf("page %d", id))
		if err := h.Release(true); err != nil {
			return err
		}
		ids = append(ids, id)
	}

	for _, id := range ids {
		h, err := pager.Fetch(id)
		if err != nil {
			return fmt.Errorf("fetch %d: %w", id, err)
		}
		want := fmt.Sprintf("page %d", id)
		got := string(h.Data()[:len(want)])
		if err := h.Release(false); err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("page %d: got %q, want %q", id, got, want)
		}
	}

	slog.Info("workload done", "pages", len(ids))
	return nil
}
