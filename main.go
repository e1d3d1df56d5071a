package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"rhein/pkg/compiler"
	"rhein/pkg/config"
	"rhein/pkg/logger"
	"rhein/pkg/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rhein", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "", "input source file path (more may follow as arguments)")
	outPath := fs.String("out", "", "output file path (default: input with the output extension); single input only")
	toStdout := fs.Bool("stdout", false, "write translations to stdout instead of files")
	strict := fs.String("strict", "", "compilation mode: true, false, yes or no (default from config, else true)")
	indent := fs.Int("indent", -1, "indentation of top-level output (default from config)")
	configPath := fs.String("config", "", "config file (default: rhein.yaml, rhein.yml or rhein.toml in the working directory)")
	jobs := fs.Int("jobs", 0, "files translated in parallel (default from config)")
	watch := fs.Bool("watch", false, "keep running and re-translate inputs when they change")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (default from config)")
	logFormat := fs.String("log-format", "", "text or json (default from config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	if *indent >= 0 {
		cfg.Indent = *indent
	}
	if *jobs > 0 {
		cfg.Jobs = *jobs
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	mode := cfg.Mode()
	if *strict != "" {
		mode = compiler.ParseMode(*strict)
	}
	ext := cfg.OutputExt
	if ext == "" {
		ext = ".js"
	}

	logCfg := logger.DefaultConfig()
	logCfg.Output = stderr
	if cfg.Log.Level != "" {
		logCfg.Level = cfg.Log.Level
	}
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	log, err := logger.Init(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "invalid log settings: %v\n", err)
		return 2
	}

	var inputs []string
	if *inPath != "" {
		inputs = append(inputs, *inPath)
	}
	inputs = append(inputs, fs.Args()...)

	tr := &translator{mode: mode, indent: cfg.Indent, ext: ext, out: *outPath, log: log}
	if *toStdout {
		tr.stdout = stdout
	}

	if len(inputs) == 0 {
		if isTerminal(stdin) {
			fmt.Fprintln(stderr, "nothing to do: provide -in or file arguments, or pipe a program on stdin")
			fs.Usage()
			return 2
		}
		if err := tr.translateStream(stdin, stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}
	if *outPath != "" && len(inputs) > 1 {
		fmt.Fprintln(stderr, "-out can only be used with a single input")
		return 2
	}
	if tr.stdout != nil {
		// Keep stdout in input order.
		cfg.Jobs = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tr.translateAll(ctx, inputs, cfg.Jobs)
	if !*watch {
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}
	if err != nil {
		log.Error("translation failed", "err", err)
	}
	if err := tr.watch(ctx, inputs); err != nil {
		fmt.Fprintf(stderr, "watch failed: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Default(), nil
		}
		if path = config.Find(wd); path == "" {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// translator translates whole files, each against a fresh environment.
type translator struct {
	mode   compiler.Mode
	indent int
	ext    string
	out    string // explicit output path for a single input
	stdout io.Writer
	log    *slog.Logger

	mu sync.Mutex // serialises writes to stdout
}

func (tr *translator) translate(name, src string) (string, error) {
	code, err := compiler.Translate(src, nil, tr.indent, "", tr.mode)
	if err != nil {
		return "", compiler.WrapErrorWithSource(err, name, src)
	}
	return code, nil
}

func (tr *translator) translateStream(r io.Reader, w io.Writer) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	code, err := tr.translate("<stdin>", string(src))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, code)
	return err
}

func (tr *translator) translateFile(path string) error {
	fullPath, _, err := utils.GetPathInfo(path)
	if err != nil {
		return err
	}

	var output string
	if tr.stdout == nil {
		output = tr.out
		if output == "" {
			output = utils.OutputPath(path, tr.ext)
		}
		outFull, _, err := utils.GetPathInfo(output)
		if err != nil {
			return err
		}
		if outFull == fullPath {
			return fmt.Errorf("output %q would overwrite input %q", output, path)
		}
	}

	source, err := os.ReadFile(fullPath)
	if err != nil {
		return fmt.Errorf("failed to read input file %q: %w", path, err)
	}
	code, err := tr.translate(path, string(source))
	if err != nil {
		return err
	}

	if tr.stdout != nil {
		tr.mu.Lock()
		defer tr.mu.Unlock()
		_, err := fmt.Fprintln(tr.stdout, code)
		return err
	}

	if err := utils.WriteFile(output, []byte(code+"\n")); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", output, err)
	}
	tr.log.Info("translated", "in", path, "out", output, "bytes", len(code)+1)
	return nil
}

// translateAll translates paths with at most jobs in flight and reports the
// first failure.
func (tr *translator) translateAll(ctx context.Context, paths []string, jobs int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for _, p := range paths {
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return tr.translateFile(p)
		})
	}
	return g.Wait()
}

// watch re-translates an input whenever it is written or replaced, until ctx
// is done. Directories are watched rather than files so that editors which
// save by rename are still seen.
func (tr *translator) watch(ctx context.Context, paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	targets := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		full, dir, err := utils.GetPathInfo(p)
		if err != nil {
			return err
		}
		targets[full] = p
		dirs[dir] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("cannot watch %s: %w", dir, err)
		}
	}
	tr.log.Info("watching", "files", len(targets))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			p, ok := targets[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			tr.log.Debug("change", "file", p, "op", ev.Op.String())
			if err := tr.translateFile(p); err != nil {
				tr.log.Error("translation failed", "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				tr.log.Warn("watch queue overflowed; changes may have been missed")
				continue
			}
			tr.log.Warn("watch error", "err", err)
		}
	}
}
