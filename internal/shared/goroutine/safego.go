// Package goroutine runs work that must not take the process down when
// it panics.
package goroutine

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/fixora-app/fixora/internal/shared/logger"
)

// Run calls fn on the current goroutine and logs a panic instead of
// propagating it.
func Run(log logger.Interface, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}

// Group runs fn on its own goroutine like Run, for long-lived loops that shutdown has to
// drain. The zero value is not usable; call NewGroup.
type Group struct {
	log logger.Interface
	wg  sync.WaitGroup
}

func NewGroup(log logger.Interface) *Group {
	return &Group{log: log}
}

func (g *Group) Go(name string, fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		Run(g.log, name, fn)
	}()
}

// Wait blocks until every goroutine started with Go has returned.
func (g *Group) Wait() {
	g.wg.Wait()
}
