package explores

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/reusee/choicepeek/saves"
	"github.com/reusee/choicepeek/syncs"
)

// ExploreAll explores several save files against one container, at most
// parallel at a time. Previews keep the order of savePaths; a failed save
// leaves a nil Preview and contributes to the returned error.
func (e *Explorer) ExploreAll(ctx context.Context, containerPath string, savePaths []string, parallel int) ([]*Preview, error) {
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	sem := syncs.NewSemaphore(parallel)
	previews := make([]*Preview, len(savePaths))
	errs := make([]error, len(savePaths))

	var wg sync.WaitGroup
	for i, path := range savePaths {
		if err := sem.AcquireContext(ctx); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release()
			state, err := saves.Load(path)
			if err == nil {
				previews[i], err = e.Explore(ctx, containerPath, state)
			}
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)
			}
		}()
	}
	wg.Wait()

	return previews, errors.Join(errs...)
}
