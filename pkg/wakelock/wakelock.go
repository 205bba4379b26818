package wakelock

import (
	"context"
	"log"
	"os/exec"
	"time"

	"github.com/harrisonrobin/tasknotify/pkg/config"
)

const timeout = 5 * time.Second

// Lock holds a Termux wakelock for the duration of a run. Outside Termux it
// does nothing.
type Lock struct {
	enabled bool
	run     func(ctx context.Context, name string) error
}

func New() *Lock {
	return &Lock{enabled: config.IsTermux(), run: runCommand}
}

// Acquire failures are logged and ignored; a short run usually finishes
// before the device sleeps.
func (l *Lock) Acquire() {
	if !l.enabled {
		return
	}
	log.Println("Attempting to acquire Termux wakelock...")
	if err := l.exec("termux-wake-lock"); err != nil {
		log.Printf("Warning: wakelock attempt failed: %v", err)
		return
	}
	log.Println("Termux wakelock acquired.")
}

func (l *Lock) Release() {
	if !l.enabled {
		return
	}
	if err := l.exec("termux-wake-unlock"); err != nil {
		log.Printf("Warning: wakelock release failed: %v", err)
		return
	}
	log.Println("Termux wakelock released.")
}

func (l *Lock) exec(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return l.run(ctx, name)
}

func runCommand(ctx context.Context, name string) error {
	return exec.CommandContext(ctx, name).Run()
}
