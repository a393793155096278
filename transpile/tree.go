package transpile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/reusee/djs/syncs"
)

const SourceExt = ".djs"

// TreeResult reports one file of TranspileTree.
type TreeResult struct {
	Path   string
	Output string
	Err    error
}

// TranspileTree transpiles every .djs file under root into a .js file next
// to it, at most jobs files at a time. Results are sorted by path. The
// returned error joins the errors of all failed files.
func (t *Transpiler) TranspileTree(ctx context.Context, root string, jobs int) ([]TreeResult, error) {
	var paths []string
	if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			paths = append(paths, path)
		}
		return nil
	}); err != nil {
		return nil, wrap(err)
	}
	slices.Sort(paths)

	results := make([]TreeResult, len(paths))
	sem := syncs.NewSemaphore(jobs)
	var wg sync.WaitGroup
	for i, path := range paths {
		results[i].Path = path
		if err := sem.Acquire(ctx); err != nil {
			results[i].Err = err
			continue
		}
		wg.Go(func() {
			defer sem.Release()
			results[i].Output, results[i].Err = t.transpileFile(ctx, path)
		})
	}
	wg.Wait()

	var errs []error
	for _, result := range results {
		if result.Err != nil {
			errs = append(errs, result.Err)
		}
	}
	return results, errors.Join(errs...)
}

func (t *Transpiler) transpileFile(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", wrap(err)
	}
	result, err := t.Transpile(ctx, path, string(content))
	if err != nil {
		return "", err
	}
	output := strings.TrimSuffix(path, SourceExt) + ".js"
	if err := os.WriteFile(output, []byte(result.Code), 0644); err != nil {
		return "", wrap(err)
	}
	return output, nil
}
