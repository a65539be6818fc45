package cmd

import (
	"github.com/Gobot1234/blacken-docs/internal/workspace"
	"golang.org/x/sync/errgroup"
)

// parallel calls fn for every file, at most jobs at a time, and returns the
// results in file order.
func parallel[T any](files []workspace.File, jobs int, fn func(workspace.File) T) []T {
	results := make([]T, len(files))

	if len(files) == 0 {
		return results
	}

	var g errgroup.Group

	g.SetLimit(max(min(jobs, len(files)), 1))

	for i, file := range files {
		i, file := i, file

		g.Go(func() error {
			results[i] = fn(file)

			return nil
		})
	}

	_ = g.Wait()

	return results
}
