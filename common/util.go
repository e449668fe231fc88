package common

import (
	"sync"
)

// RunParallel runs every function in its own goroutine and concatenates
// their results in argument order, so the output does not depend on
// scheduling.
func RunParallel[T any](funcs ...func() []T) []T {
	var wg sync.WaitGroup
	results := make([][]T, len(funcs))

	for i, fn := range funcs {
		wg.Add(1)
		go func(i int, fn func() []T) {
			defer wg.Done()
			results[i] = fn()
		}(i, fn)
	}
	wg.Wait()

	var all []T
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}
