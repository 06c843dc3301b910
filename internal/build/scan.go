package build

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/sitedata/internal/records"
)

// Scan collects the content documents matching the configured patterns,
// sorted by name for deterministic processing order. File reads run on a
// small worker pool; a single unreadable file fails the scan.
func Scan(contentDir string, patterns []string) ([]*records.File, error) {
	fsys := os.DirFS(contentDir)

	seen := map[string]bool{}
	var names []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, name := range matches {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	files := make([]*records.File, len(names))
	errs := make([]error, len(names))

	workers := runtime.NumCPU()
	if workers > len(names) {
		workers = len(names)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				data, err := os.ReadFile(contentDir + "/" + names[i])
				if err != nil {
					errs[i] = fmt.Errorf("read %s: %w", names[i], err)
					continue
				}
				f, err := records.NewFile(names[i], string(data))
				if err != nil {
					errs[i] = fmt.Errorf("file record %s: %w", names[i], err)
					continue
				}
				files[i] = f
			}
		}()
	}
	for i := range names {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
