// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/niwi/photoarc/internal/adapters/exifdate"
	"github.com/niwi/photoarc/internal/adapters/exiftoolmeta"
	"github.com/niwi/photoarc/internal/adapters/osfs"
	"github.com/niwi/photoarc/internal/archive"
	"github.com/niwi/photoarc/internal/config"
	"github.com/niwi/photoarc/internal/ports"
	"github.com/niwi/photoarc/internal/process"
	"github.com/niwi/photoarc/internal/report"
	"github.com/niwi/photoarc/internal/tagmatch"
)

// ConfigService provides configuration operations for the CLI.
type ConfigService interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
	ConfigPath() string
	DefaultConfig() *config.Config
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	ConfigSvc ConfigService
	FS        ports.FileSystem
	// MetaFactory creates the metadata reader used by sync and check.
	// The returned closer stops the underlying extractor process.
	MetaFactory func() (ports.MetadataReader, io.Closer, error)

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	exitCode := 0
	return &CLI{
		Out:     out,
		Err:     errOut,
		Version: "test",
		Args:    args,
		Exit:    func(code int) { exitCode = code; _ = exitCode },
		green:   noColor,
		yellow:  noColor,
		cyan:    noColor,
		red:     noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load() (*config.Config, error) { return config.Load() }
func (d *defaultConfigService) Save(cfg *config.Config) error { return cfg.Save() }
func (d *defaultConfigService) ConfigPath() string            { return config.ConfigPath() }
func (d *defaultConfigService) DefaultConfig() *config.Config { return config.DefaultConfig() }

func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) fs() ports.FileSystem {
	if c.FS != nil {
		return c.FS
	}
	return osfs.New()
}

func (c *CLI) metaFactory() func() (ports.MetadataReader, io.Closer, error) {
	if c.MetaFactory != nil {
		return c.MetaFactory
	}
	return func() (ports.MetadataReader, io.Closer, error) {
		r, err := exiftoolmeta.New()
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	}
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	if len(c.Args) < 2 {
		fmt.Fprintln(c.Out, "No command specified. Use 'photoarc help' for usage.")
		return
	}

	switch c.Args[1] {
	case "run":
		c.RunProcess()
	case "sync":
		c.RunSync()
	case "audit":
		c.RunAudit()
	case "check":
		c.RunCheck()
	case "init":
		c.InitConfig()
	case "version", "-v", "--version":
		fmt.Fprintf(c.Out, "photoarc v%s\n", c.Version)
	case "help", "-h", "--help":
		c.PrintUsage()
	default:
		fmt.Fprintf(c.Err, "Unknown command: %s\n", c.Args[1])
		c.PrintUsage()
		c.Exit(1)
	}
}

// PrintUsage prints the help message.
func (c *CLI) PrintUsage() {
	fmt.Fprintln(c.Out, `photoarc - Dated Photo Archive Processor

Usage:
  photoarc                                 Launch interactive TUI
  photoarc ui                              Launch interactive TUI
  photoarc run [flags] [root]              Walk the archive and report every file
  photoarc sync [flags] [root]             Copy tagged photos into the dest tree
  photoarc audit [flags] [root]            Flag photos whose EXIF date disagrees
                                           with their directory date
  photoarc check <file> <tag>              Test whether one file carries a keyword
  photoarc init                            Create default config file
  photoarc version, -v                     Show version
  photoarc help, -h                        Show this help

Flags for run/sync/audit:
  -year N -month N -day N                  Process only the given year/month/day
  -exact                                   Root is itself the preset directory
  -tag KEYWORD                             Keyword to sync on (sync only)
  -dest DIR                                Destination root (sync only)

Config: ~/.photoarc/config.yaml`)
}

// InitConfig creates the default config file.
func (c *CLI) InitConfig() {
	svc := c.configSvc()
	if err := svc.Save(svc.DefaultConfig()); err != nil {
		fmt.Fprintf(c.Err, "Error saving config: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "Created config at %s\n", svc.ConfigPath())
}

// runFlags holds the traversal options shared by run, sync and audit.
type runFlags struct {
	root   string
	preset *archive.DateMarker
	exact  bool
	tag    string
	dest   string
	cfg    *config.Config
}

// parseRunFlags merges config file values with command-line flags; flags win.
func (c *CLI) parseRunFlags(command string, args []string) (*runFlags, bool) {
	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return nil, false
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(c.Err)
	year := fs.Int("year", cfg.Preset.Year, "preset year")
	month := fs.Int("month", cfg.Preset.Month, "preset month")
	day := fs.Int("day", cfg.Preset.Day, "preset day")
	exact := fs.Bool("exact", cfg.ExactPath, "root is the preset directory itself")
	tag := fs.String("tag", cfg.Tag, "IPTC keyword to select")
	dest := fs.String("dest", cfg.Dest, "destination root")
	if err := fs.Parse(args); err != nil {
		c.Exit(1)
		return nil, false
	}

	root := config.ExpandPath(cfg.Root)
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}
	if root == "" {
		fmt.Fprintln(c.Err, "No archive root configured. Pass one or run 'photoarc init'.")
		c.Exit(1)
		return nil, false
	}

	var preset *archive.DateMarker
	if *year != 0 || *month != 0 || *day != 0 {
		preset = &archive.DateMarker{Year: *year, Month: *month, Day: *day}
	}

	return &runFlags{
		root:   root,
		preset: preset,
		exact:  *exact,
		tag:    *tag,
		dest:   config.ExpandPath(*dest),
		cfg:    cfg,
	}, true
}

// process builds the engine around the given hook and runs it.
func (c *CLI) process(opts *runFlags, hook archive.FileProcessor, reporter archive.Reporter) {
	engine, err := archive.New(archive.Options{
		RootPath:  opts.root,
		Preset:    opts.preset,
		ExactPath: opts.exact,
		FS:        c.fs(),
		Hook:      hook,
		Reporter:  reporter,
	})
	if err != nil {
		fmt.Fprintf(c.Err, "%s %v\n", c.red("Error:"), err)
		c.Exit(1)
		return
	}
	engine.Process()
}

// RunProcess runs the plain traversal: every file reported, every file matched.
func (c *CLI) RunProcess() {
	opts, ok := c.parseRunFlags("run", c.Args[2:])
	if !ok {
		return
	}
	reporter := report.NewConsole(c.Out, c.Err)
	c.process(opts, &process.Log{Reporter: reporter}, reporter)
}

// RunSync copies photos carrying the configured keyword into the dest tree.
func (c *CLI) RunSync() {
	opts, ok := c.parseRunFlags("sync", c.Args[2:])
	if !ok {
		return
	}
	if opts.tag == "" {
		fmt.Fprintln(c.Err, "sync requires a keyword: set -tag or the config tag")
		c.Exit(1)
		return
	}
	if opts.dest == "" {
		fmt.Fprintln(c.Err, "sync requires a destination: set -dest or the config dest")
		c.Exit(1)
		return
	}

	reader, closer, err := c.metaFactory()()
	if err != nil {
		fmt.Fprintf(c.Err, "Error starting metadata reader: %v\n", err)
		c.Exit(1)
		return
	}
	defer closer.Close()

	reporter := report.NewConsole(c.Out, c.Err)
	hook := &process.TagSync{
		FS:       c.fs(),
		Matcher:  tagmatch.New(reader, time.Duration(opts.cfg.CacheMinutes)*time.Minute),
		Tag:      opts.tag,
		DestRoot: opts.dest,
		Reporter: reporter,
	}
	fmt.Fprintf(c.Out, "%s Syncing photos tagged %q to %s\n", c.cyan("=>"), opts.tag, opts.dest)
	c.process(opts, hook, reporter)
}

// RunAudit flags photos filed under a directory date that disagrees with
// their EXIF capture date.
func (c *CLI) RunAudit() {
	opts, ok := c.parseRunFlags("audit", c.Args[2:])
	if !ok {
		return
	}
	reporter := report.NewConsole(c.Out, c.Err)
	hook := &process.Audit{
		Dates:    exifdate.New(c.fs()),
		Reporter: reporter,
	}
	fmt.Fprintf(c.Out, "%s Auditing capture dates under %s\n", c.cyan("=>"), opts.root)
	c.process(opts, hook, reporter)
}

// RunCheck tests a single file for a keyword.
func (c *CLI) RunCheck() {
	if len(c.Args) < 4 {
		fmt.Fprintln(c.Err, "Usage: photoarc check <file> <tag>")
		c.Exit(1)
		return
	}
	file, tag := c.Args[2], c.Args[3]

	reader, closer, err := c.metaFactory()()
	if err != nil {
		fmt.Fprintf(c.Err, "Error starting metadata reader: %v\n", err)
		c.Exit(1)
		return
	}
	defer closer.Close()

	matcher := tagmatch.New(reader, time.Minute)
	if matcher.FileHasTag(file, tag) {
		fmt.Fprintf(c.Out, "%s %s has tag %q\n", c.green("MATCH"), file, tag)
	} else {
		fmt.Fprintf(c.Out, "%s %s does not have tag %q\n", c.yellow("no match"), file, tag)
		c.Exit(1)
	}
}
