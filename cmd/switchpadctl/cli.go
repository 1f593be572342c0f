package main

// CLI is switchpadctl's root command set: a single Kong-parsed struct
// with embedded Log config, resolved from flags or a layered config file.
type CLI struct {
	List  ListCmd  `cmd:"" help:"Poll the registered controllers once and print the snapshots as JSON."`
	Watch WatchCmd `cmd:"" help:"Poll repeatedly, redrawing the snapshots in place."`

	Allow []string  `help:"Restrict the registry sweep to these HID serials. Empty allows everything." name:"allow"`
	Log   LogConfig `embed:"" prefix:"log."`
}

// LogConfig is the logging-related subset of flags: a level, an optional
// log file, and an optional raw HID report dump file.
type LogConfig struct {
	Level   string `help:"Log level: trace, debug, info, warn, error." default:"info"`
	File    string `help:"Also write logs to this file; console logs then all go to stderr."`
	RawFile string `help:"Write raw HID report hex dumps to this file."`
}
