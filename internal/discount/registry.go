// Package discount maps discount codes to fixed percentage reductions.
//
// Two codes ship built in (SAVE10, SAVE20). Deployments can merge further
// codes from files, one CODE,PERCENT pair per line. Lookups hit a bloom
// filter first so misses on large code sets stay cheap.
package discount

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	minFilterCapacity       = 1024
	filterFalsePositiveRate = 0.01
)

// Discount is a resolved discount code.
type Discount struct {
	Code    string
	Percent int64
}

// Registry resolves discount codes to their percentage reduction.
type Registry struct {
	mu          sync.RWMutex
	codes       map[string]int64
	filter      *bloom.BloomFilter
	loadedFiles int
}

// NewRegistry returns a Registry seeded with the built-in codes.
func NewRegistry() *Registry {
	r := &Registry{
		codes: map[string]int64{
			"SAVE10": 10,
			"SAVE20": 20,
		},
	}
	r.rebuildFilterLocked()
	return r
}

// Lookup resolves a discount code. Unknown codes return (zero, false),
// not an error; pricing treats them as no discount.
func (r *Registry) Lookup(ctx context.Context, code string) (Discount, bool) {
	if code == "" {
		return Discount{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Bloom filter short-circuit: a negative answer is definitive.
	if !r.filter.Test([]byte(code)) {
		return Discount{}, false
	}

	percent, ok := r.codes[code]
	if !ok {
		return Discount{}, false
	}
	return Discount{Code: code, Percent: percent}, true
}

// LoadFromFiles merges discount codes from the given files concurrently.
// Returns an error if any file fails to load; on error the registry keeps
// its previous contents. Files ending in .gz are decompressed on the fly.
func (r *Registry) LoadFromFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no discount files provided")
	}

	type fileLoadResult struct {
		index int
		codes map[string]int64
		err   error
	}

	resultChan := make(chan fileLoadResult, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			codes, err := loadFile(ctx, path)
			resultChan <- fileLoadResult{
				index: index,
				codes: codes,
				err:   err,
			}
		}(i, path)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results maintaining order so error messages are stable.
	results := make([]fileLoadResult, len(paths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			return fmt.Errorf("failed to load file %d: %w", i+1, result.err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, result := range results {
		for code, percent := range result.codes {
			r.codes[code] = percent
		}
	}
	r.loadedFiles += len(paths)
	r.rebuildFilterLocked()

	return nil
}

// Stats returns statistics about the registered codes.
func (r *Registry) Stats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return map[string]interface{}{
		"total_codes":  len(r.codes),
		"loaded_files": r.loadedFiles,
	}
}

// rebuildFilterLocked resizes and repopulates the bloom filter.
// Callers must hold the write lock (or own the registry exclusively).
func (r *Registry) rebuildFilterLocked() {
	capacity := max(len(r.codes), minFilterCapacity)
	filter := bloom.NewWithEstimates(uint(capacity), filterFalsePositiveRate)
	for code := range r.codes {
		filter.Add([]byte(code))
	}
	r.filter = filter
}

func loadFile(ctx context.Context, path string) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gzReader, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gunzip %s: %w", path, err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	codes, err := parseCodes(reader)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return codes, nil
}

// parseCodes reads CODE,PERCENT pairs, one per line.
// Blank lines and lines starting with # are skipped.
func parseCodes(r io.Reader) (map[string]int64, error) {
	codes := make(map[string]int64)
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		code, percentStr, found := strings.Cut(line, ",")
		if !found {
			return nil, fmt.Errorf("line %d: expected CODE,PERCENT", lineNo)
		}

		code = strings.TrimSpace(code)
		if code == "" {
			return nil, fmt.Errorf("line %d: empty code", lineNo)
		}

		percent, err := strconv.ParseInt(strings.TrimSpace(percentStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad percent: %w", lineNo, err)
		}
		if percent < 1 || percent > 100 {
			return nil, fmt.Errorf("line %d: percent %d out of range 1-100", lineNo, percent)
		}

		codes[code] = percent
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return codes, nil
}
