//go:build !windows

// Package stderr redirects file descriptor 2 while the terminal UI owns the
// screen, so stray writes from dependencies end up in the log instead of
// over the alternate screen.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"
)

// Capture holds a redirected stderr.
type Capture struct {
	orig int
	r, w *os.File
	done sync.WaitGroup
}

// Start redirects fd 2 and calls fn for every non-blank line written to it.
// fn runs on a separate goroutine.
func Start(fn func(line string)) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	fd := int(os.Stderr.Fd())
	orig, err := syscall.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	if err := dup2(int(w.Fd()), fd); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w}
	c.done.Add(1)
	go func() {
		defer c.done.Done()
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				fn(line)
			}
		}
	}()
	return c, nil
}

// Stop restores fd 2 and waits for the remaining lines to be delivered.
func (c *Capture) Stop() {
	_ = dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)
	c.w.Close()
	c.done.Wait()
	c.r.Close()
}
