// Package app wires configuration, logging, themes and the render
// pipeline into the lexstorm application.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/dshills/lexstorm/internal/config"
	"github.com/dshills/lexstorm/internal/lexer"
	"github.com/dshills/lexstorm/internal/render"
	"github.com/dshills/lexstorm/internal/repl"
	"github.com/dshills/lexstorm/internal/style"
	"github.com/dshills/lexstorm/internal/theme"
)

// themeReloadDebounce is how long a theme script must sit unchanged
// before it is reloaded. Editors tend to write files in bursts.
const themeReloadDebounce = 250 * time.Millisecond

// Options configure the application. String fields override the config
// file when non-empty; pointer fields override only when the flag was
// actually given.
type Options struct {
	// ConfigPath is the config file to load. Empty means the default
	// location under the user config directory.
	ConfigPath string

	// Theme overrides the configured theme.
	Theme string

	// Color overrides the color mode: auto, always or never.
	Color string

	// LogFile and LogLevel override the logging settings.
	LogFile  string
	LogLevel string

	// Eval is a source string to render once instead of starting the
	// interactive session.
	Eval string

	// Files are paths to render once, in order.
	Files []string

	// List and Depth override the token listing settings.
	List  *bool
	Depth *bool
}

// App holds the running pieces of lexstorm.
type App struct {
	opts     Options
	cfg      config.Config
	cfgPath  string
	log      *Logger
	logFile  *os.File
	registry *theme.Registry
	watcher  *config.Watcher
	mode     style.Mode
	color    bool
	stdout   io.Writer
}

// New creates the application and initializes its components.
func New(opts Options) (*App, error) {
	a := &App{
		opts:   opts,
		log:    NullLogger,
		stdout: os.Stdout,
	}
	if err := a.bootstrap(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// bootstrap initializes components in dependency order.
func (a *App) bootstrap() error {
	// 1. Configuration: file, then environment, then flags.
	a.cfgPath = a.opts.ConfigPath
	if a.cfgPath == "" {
		a.cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return NewComponentError("config", err)
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return NewComponentError("config", err)
	}
	applyOverrides(&cfg, a.opts)
	if err := cfg.Validate(); err != nil {
		return NewComponentError("config", err)
	}
	// Absolute paths, so watcher events compare against them directly.
	if a.cfgPath != "" {
		if abs, err := filepath.Abs(a.cfgPath); err == nil {
			a.cfgPath = abs
		}
	}
	if cfg.ThemeDir != "" {
		if abs, err := filepath.Abs(cfg.ThemeDir); err == nil {
			cfg.ThemeDir = abs
		}
	}
	a.cfg = cfg

	// 2. Logging. Diagnostics go to the log file or nowhere; stdout
	// belongs to the rendered output.
	if err := a.initLogging(); err != nil {
		return NewComponentError("logging", err)
	}

	// 3. Themes: builtins first, then user scripts over them.
	a.registry = theme.NewRegistry()
	if a.cfg.ThemeDir != "" {
		if err := a.registry.LoadDir(a.cfg.ThemeDir); err != nil {
			a.log.WithComponent("theme").Warn("loading theme scripts: %v", err)
		}
	}
	if !a.registry.SetCurrent(a.cfg.Theme) {
		return NewComponentError("theme", fmt.Errorf("unknown theme %q (available: %s)",
			a.cfg.Theme, strings.Join(a.registry.Names(), ", ")))
	}

	// 4. Output mode and colorization.
	a.mode = style.DetectMode()
	a.color = colorEnabled(a.cfg.Color, term.IsTerminal(int(os.Stdout.Fd())))

	// 5. File watcher, so theme script edits and config theme changes
	// show up live.
	if a.cfg.WatchThemes {
		a.startWatcher()
	}

	a.log.WithFields(map[string]any{
		"theme": a.cfg.Theme,
		"color": a.color,
	}).Info("lexstorm ready")
	return nil
}

// initLogging opens the log file if one is configured. Without one the
// logger stays disabled.
func (a *App) initLogging() error {
	if a.cfg.LogFile == "" {
		return nil
	}
	f, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.logFile = f
	a.log = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(a.cfg.LogLevel),
		Output: f,
		Prefix: "lexstorm",
	})
	return nil
}

// applyOverrides layers command-line options over the config.
func applyOverrides(cfg *config.Config, opts Options) {
	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
	if opts.Color != "" {
		cfg.Color = opts.Color
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.List != nil {
		cfg.List = *opts.List
	}
	if opts.Depth != nil {
		cfg.Depth = *opts.Depth
	}
}

// colorEnabled resolves the configured color mode against the
// environment. NO_COLOR disables auto-colorization but loses to an
// explicit always.
func colorEnabled(mode string, isTerminal bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal
}

// Run renders the one-shot input if any was given, otherwise starts
// the interactive session. Blocks until done.
func (a *App) Run() error {
	switch {
	case a.opts.Eval != "":
		a.renderSource(a.opts.Eval)
		return nil
	case len(a.opts.Files) > 0:
		return a.renderFiles()
	case !term.IsTerminal(int(os.Stdin.Fd())):
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return NewOperationError("read", "stdin", err)
		}
		a.renderSource(string(data))
		return nil
	default:
		a.log.Info("starting interactive session")
		return repl.New(a.cfg, a.registry, a.color, a.mode).Run()
	}
}

// renderFiles renders each file in turn, with head-style headers when
// there is more than one.
func (a *App) renderFiles() error {
	for i, path := range a.opts.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			return NewOperationError("read", path, err)
		}
		if len(a.opts.Files) > 1 {
			if i > 0 {
				fmt.Fprintln(a.stdout)
			}
			header := fmt.Sprintf("==> %s <==", path)
			if a.color {
				header = a.mode.Apply(style.DefaultStyle().Bold()) + header + style.Reset
			}
			fmt.Fprintln(a.stdout, header)
		}
		a.renderSource(string(data))
	}
	return nil
}

// renderSource scans one source and writes the rendering, the optional
// token listing and any scan errors to stdout.
func (a *App) renderSource(source string) {
	res := lexer.Scan(source)
	r := render.NewRenderer(a.registry.Current(), a.mode)

	var out string
	if a.color {
		out = r.Render(source, res.Tokens)
	} else {
		out = r.Plain(source, res.Tokens)
	}
	fmt.Fprint(a.stdout, out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(a.stdout)
	}

	if a.cfg.List {
		opts := render.DescribeOptions{Depth: a.cfg.Depth, Color: a.color}
		for _, line := range r.Describe(source, res.Tokens, opts) {
			fmt.Fprintln(a.stdout, line)
		}
	}
	for _, e := range res.Errs {
		if a.color {
			mc := a.registry.Current().MismatchColor()
			fmt.Fprintln(a.stdout, a.mode.Foreground(mc)+"lex error: "+e.Error()+style.Reset)
		} else {
			fmt.Fprintf(a.stdout, "lex error: %s\n", e)
		}
	}
}

// startWatcher begins watching the theme directory and the config file
// for changes. Failures disable watching but never the application.
func (a *App) startWatcher() {
	log := a.log.WithComponent("watcher")
	w, err := config.NewWatcher(themeReloadDebounce)
	if err != nil {
		log.Warn("file watching unavailable: %v", err)
		return
	}

	watching := false
	if a.cfg.ThemeDir != "" {
		if err := w.Watch(a.cfg.ThemeDir); err != nil {
			log.Warn("watching %s: %v", a.cfg.ThemeDir, err)
		} else {
			watching = true
		}
	}
	if a.cfgPath != "" {
		// Watch the parent directory: editors replace files by rename,
		// which a watch on the file itself does not survive.
		dir := filepath.Dir(a.cfgPath)
		if err := w.Watch(dir); err != nil {
			log.Warn("watching %s: %v", dir, err)
		} else {
			watching = true
		}
	}
	if !watching {
		_ = w.Close()
		return
	}

	a.watcher = w
	go a.reloadLoop()
}

// reloadLoop applies file changes: theme scripts re-register in place,
// and a changed config file can switch the active theme. Other config
// fields take effect on the next start. Runs until the watcher closes.
func (a *App) reloadLoop() {
	log := a.log.WithComponent("reload")
	for {
		select {
		case ev, ok := <-a.watcher.Events():
			if !ok {
				return
			}
			switch {
			case ev.Op.Has(config.OpRemove):
				// Nothing to apply.
			case ev.Path == a.cfgPath:
				a.reloadConfig(log)
			case filepath.Ext(ev.Path) == ".lua" && filepath.Dir(ev.Path) == filepath.Clean(a.cfg.ThemeDir):
				a.reloadTheme(log, ev.Path)
			}
		case err, ok := <-a.watcher.Errors():
			if !ok {
				return
			}
			log.Warn("watch error: %v", err)
		}
	}
}

func (a *App) reloadTheme(log *Logger, path string) {
	t, err := theme.LoadScript(path)
	if err != nil {
		log.Warn("reloading %s: %v", path, err)
		return
	}
	a.registry.Register(t)
	log.Info("reloaded theme %q from %s", t.Name, path)
}

// reloadConfig re-reads the config file and applies its theme
// selection. The command line still wins.
func (a *App) reloadConfig(log *Logger) {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		log.Warn("reloading config: %v", err)
		return
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		log.Warn("reloading config: %v", err)
		return
	}
	applyOverrides(&cfg, a.opts)

	if cfg.Theme == a.registry.Current().Name {
		return
	}
	if !a.registry.SetCurrent(cfg.Theme) {
		log.Warn("config names unknown theme %q", cfg.Theme)
		return
	}
	log.Info("theme switched to %q", cfg.Theme)
}

// Close releases the watcher and the log file.
func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		a.watcher = nil
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, err)
		}
		a.logFile = nil
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
