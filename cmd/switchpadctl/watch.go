package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/kenzaburo/switchpad/hid/hidraw"
	switchpadlog "github.com/kenzaburo/switchpad/internal/log"
	"github.com/kenzaburo/switchpad/switchpad"
)

// WatchCmd polls repeatedly and redraws the snapshots in place, in raw
// terminal mode so pressing q (or Ctrl-C) exits the loop without waiting
// for Enter; other keys are ignored.
type WatchCmd struct {
	Interval time.Duration `help:"Poll interval." default:"16ms"`
}

func (c *WatchCmd) Run(logger *slog.Logger, rawLogger switchpadlog.RawLogger, cli *CLI) error {
	engine := switchpad.New(hidraw.New(), logger, rawLogger)
	engine.SetAllowlist(cli.Allow)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("switchpadctl: enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keyCh := make(chan byte, 1)
	go func() {
		var b [1]byte
		for {
			if _, err := os.Stdin.Read(b[:]); err != nil {
				return
			}
			keyCh <- b[0]
		}
	}()

	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	linesDrawn := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case key := <-keyCh:
			if key == 'q' || key == 3 { // 'q' or Ctrl-C
				return nil
			}
		case <-ticker.C:
			snapshots, err := engine.Poll()
			if err != nil {
				logger.Error("poll failed", "error", err)
				continue
			}
			linesDrawn = redraw(snapshots, linesDrawn)
		}
	}
}

// redraw erases the previously-drawn lines and writes a fresh line per
// snapshot, returning the new line count for the next call.
func redraw(snapshots []switchpad.Gamepad, prevLines int) int {
	for i := 0; i < prevLines; i++ {
		fmt.Print("\x1b[A\r\x1b[K")
	}
	for _, g := range snapshots {
		fmt.Printf("%s\r\n", g.String())
	}
	fmt.Print("(press q to quit)\r\n")
	return len(snapshots) + 1
}
