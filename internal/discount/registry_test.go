package discount

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// writeCodesFile writes a discount file fixture and returns its path.
func writeCodesFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

func TestRegistry_Lookup_Builtins(t *testing.T) {
	registry := NewRegistry()
	ctx := context.Background()

	tests := []struct {
		code        string
		wantFound   bool
		wantPercent int64
	}{
		{code: "SAVE10", wantFound: true, wantPercent: 10},
		{code: "SAVE20", wantFound: true, wantPercent: 20},
		{code: "SAVE30", wantFound: false},
		{code: "save10", wantFound: false},
		{code: "", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			d, found := registry.Lookup(ctx, tt.code)

			if found != tt.wantFound {
				t.Fatalf("Lookup(%q) found = %v, want %v", tt.code, found, tt.wantFound)
			}
			if found && d.Percent != tt.wantPercent {
				t.Errorf("Lookup(%q) percent = %d, want %d", tt.code, d.Percent, tt.wantPercent)
			}
		})
	}
}

func TestRegistry_LoadFromFiles(t *testing.T) {
	t.Run("merges codes from multiple files", func(t *testing.T) {
		dir := t.TempDir()
		file1 := writeCodesFile(t, dir, "codes1.txt", "SPRING15,15\nWELCOME5,5\n")
		file2 := writeCodesFile(t, dir, "codes2.txt", "# partner codes\nPARTNER25,25\n\nSPRING15,20\n")

		registry := NewRegistry()
		if err := registry.LoadFromFiles(context.Background(), []string{file1, file2}); err != nil {
			t.Fatalf("LoadFromFiles() error = %v", err)
		}

		// Later files win on duplicate codes.
		d, found := registry.Lookup(context.Background(), "SPRING15")
		if !found || d.Percent != 20 {
			t.Errorf("SPRING15 = (%v, %v), want percent 20", d, found)
		}

		if _, found := registry.Lookup(context.Background(), "PARTNER25"); !found {
			t.Error("PARTNER25 not found after load")
		}

		// Built-ins survive a merge.
		if _, found := registry.Lookup(context.Background(), "SAVE10"); !found {
			t.Error("built-in SAVE10 lost after load")
		}

		stats := registry.Stats()
		if stats["total_codes"] != 5 {
			t.Errorf("total_codes = %v, want 5", stats["total_codes"])
		}
		if stats["loaded_files"] != 2 {
			t.Errorf("loaded_files = %v, want 2", stats["loaded_files"])
		}
	})

	t.Run("gzipped file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "codes.txt.gz")

		f, err := os.Create(path)
		if err != nil {
			t.Fatalf("failed to create fixture: %v", err)
		}
		zw := gzip.NewWriter(f)
		if _, err := zw.Write([]byte("HOLIDAY30,30\n")); err != nil {
			t.Fatalf("failed to write gzip fixture: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("failed to close gzip writer: %v", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("failed to close fixture: %v", err)
		}

		registry := NewRegistry()
		if err := registry.LoadFromFiles(context.Background(), []string{path}); err != nil {
			t.Fatalf("LoadFromFiles() error = %v", err)
		}

		d, found := registry.Lookup(context.Background(), "HOLIDAY30")
		if !found || d.Percent != 30 {
			t.Errorf("HOLIDAY30 = (%v, %v), want percent 30", d, found)
		}
	})

	t.Run("empty path list", func(t *testing.T) {
		registry := NewRegistry()
		if err := registry.LoadFromFiles(context.Background(), nil); err == nil {
			t.Error("expected error for empty path list, got nil")
		}
	})

	t.Run("non-existent file", func(t *testing.T) {
		registry := NewRegistry()
		err := registry.LoadFromFiles(context.Background(), []string{"/non/existent/codes.txt"})
		if err == nil {
			t.Error("expected error for non-existent file, got nil")
		}
	})

	t.Run("malformed lines keep the registry unchanged", func(t *testing.T) {
		dir := t.TempDir()

		tests := []struct {
			name    string
			content string
		}{
			{name: "missing percent", content: "NAKEDCODE\n"},
			{name: "non-numeric percent", content: "BADPCT,ten\n"},
			{name: "percent too high", content: "TOOBIG,150\n"},
			{name: "percent zero", content: "ZERO,0\n"},
			{name: "empty code", content: ",15\n"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := writeCodesFile(t, dir, tt.name+".txt", tt.content)

				registry := NewRegistry()
				if err := registry.LoadFromFiles(context.Background(), []string{path}); err == nil {
					t.Fatal("expected parse error, got nil")
				}

				stats := registry.Stats()
				if stats["total_codes"] != 2 {
					t.Errorf("total_codes after failed load = %v, want 2", stats["total_codes"])
				}
			})
		}
	})
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()

	paths := make([]string, 3)
	for i := range paths {
		content := fmt.Sprintf("BULK%d,1%d\n", i, i)
		paths[i] = writeCodesFile(t, dir, fmt.Sprintf("codes%d.txt", i), content)
	}

	registry := NewRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				registry.Lookup(ctx, "SAVE10")
				registry.Lookup(ctx, "NOPE")
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := registry.LoadFromFiles(ctx, paths); err != nil {
			t.Errorf("LoadFromFiles() error = %v", err)
		}
	}()

	wg.Wait()

	for i := range paths {
		code := fmt.Sprintf("BULK%d", i)
		if _, found := registry.Lookup(ctx, code); !found {
			t.Errorf("%s not found after concurrent load", code)
		}
	}
}
