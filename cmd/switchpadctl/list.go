package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/kenzaburo/switchpad/hid/hidraw"
	switchpadlog "github.com/kenzaburo/switchpad/internal/log"
	"github.com/kenzaburo/switchpad/switchpad"
)

// ListCmd polls every registered controller once and prints the resulting
// snapshots as a JSON array, for scripting or quick inspection.
type ListCmd struct{}

func (c *ListCmd) Run(logger *slog.Logger, rawLogger switchpadlog.RawLogger, cli *CLI) error {
	engine := switchpad.New(hidraw.New(), logger, rawLogger)
	engine.SetAllowlist(cli.Allow)

	snapshots, err := engine.Poll()
	if err != nil {
		return fmt.Errorf("switchpadctl: poll: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshots)
}
