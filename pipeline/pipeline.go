// Package pipeline runs one archive through discovery, loading, extraction
// and emission.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/jtj/archive"
	"github.com/chazu/jtj/bridge"
	"github.com/chazu/jtj/classload"
	"github.com/chazu/jtj/emit"
	"github.com/chazu/jtj/report"
)

var log = commonlog.GetLogger("jtj.pipeline")

// Config is everything one run needs.
type Config struct {
	Search   []string // jars or directories holding them
	Exclude  []string // extra path suffixes never treated as the archive
	Provided []string // extra provided package prefixes

	// SkipSynthetic rejects synthetic and bridge methods.
	SkipSynthetic bool

	SDKDir     string
	BridgesDir string
	Naming     emit.Naming

	// NoEmit analyses and reports without writing any files.
	NoEmit bool
	// DumpModel, if set, receives a CBOR snapshot of the model.
	DumpModel string
	// ReportDB, if set, is a SQLite database the run is recorded in.
	ReportDB string
}

// Skip is a type that contributed nothing because it could not be named or
// loaded.
type Skip struct {
	Name string
	Err  error
}

// Result describes a completed run.
type Result struct {
	Archive  string
	Model    *bridge.Model
	Stats    report.Stats
	Manifest string   // registration extension class name; empty with NoEmit
	Files    []string // written paths, in emission order
	Skipped  []Skip
}

// Run executes the pipeline. It fails before creating any output when the
// search list does not yield exactly one archive. Per-type failures are
// reported and skipped.
func Run(ctx context.Context, cfg Config, rep *report.Reporter) (*Result, error) {
	if rep == nil {
		rep = report.Discard()
	}

	path, err := archive.Discover(cfg.Search, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	log.Infof("analysing %s", path)
	rep.Archive(path)

	a, err := archive.Open(path)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	res := &Result{Archive: path}
	results, err := analyse(ctx, a, cfg, rep, res)
	if err != nil {
		return nil, err
	}

	res.Model = bridge.Build(results)
	if cfg.DumpModel != "" {
		if err := dumpModel(cfg.DumpModel, res.Model); err != nil {
			return nil, err
		}
	}

	rep.Summary(res.Model)

	if !cfg.NoEmit {
		if err := generate(cfg, res, rep); err != nil {
			return nil, err
		}
	}

	rep.Stats(res.Stats)

	if cfg.ReportDB != "" {
		if err := record(ctx, cfg.ReportDB, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func analyse(ctx context.Context, a *archive.Archive, cfg Config, rep *report.Reporter, res *Result) ([]bridge.TypeResult, error) {
	provided := append(append([]string{}, classload.DefaultProvided...), cfg.Provided...)
	loader := classload.NewContext(a, provided)

	names := a.TypeNames()
	res.Stats.TotalTypes = len(names)

	var results []bridge.TypeResult
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tn, err := bridge.ParseTypeName(name)
		if err != nil {
			log.Debugf("skipping %s: %v", name, err)
			res.Skipped = append(res.Skipped, Skip{name, err})
			rep.TypeIgnored(name, err)
			continue
		}

		t, err := loader.Load(name)
		if err != nil {
			log.Warningf("skipping %s: %v", name, err)
			res.Skipped = append(res.Skipped, Skip{name, err})
			rep.TypeSkipped(name, err)
			continue
		}

		tr := bridge.Extract(tn, t, loader, bridge.Options{SkipSynthetic: cfg.SkipSynthetic})
		res.Stats.Add(tr)
		rep.TypeSection(tr)
		results = append(results, tr)
	}
	return results, nil
}

func generate(cfg Config, res *Result, rep *report.Reporter) error {
	done := func(path string) {
		res.Files = append(res.Files, path)
		rep.Generated(path)
	}

	if err := (emit.Writer{Root: cfg.SDKDir}).WriteAll(emit.Stubs(res.Model), done); err != nil {
		return fmt.Errorf("writing stubs: %w", err)
	}

	bridges := emit.Writer{Root: cfg.BridgesDir}
	if err := bridges.WriteAll(emit.Adapters(res.Model), done); err != nil {
		return fmt.Errorf("writing adapters: %w", err)
	}
	if res.Model.Empty() {
		log.Infof("no bridgeable types; writing an empty registration manifest")
	}

	res.Manifest = emit.ManifestName(res.Model, cfg.Naming)
	if err := bridges.WriteAll([]emit.File{emit.Register(res.Model, res.Manifest)}, done); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

func dumpModel(path string, m *bridge.Model) error {
	data, err := bridge.MarshalModel(m)
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing model snapshot: %w", err)
	}
	return nil
}

func record(ctx context.Context, dbPath string, res *Result) (err error) {
	store, err := report.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()

	id, err := store.Record(ctx, report.Run{
		Archive:  res.Archive,
		Manifest: res.Manifest,
		Stats:    res.Stats,
		Model:    res.Model,
	})
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	log.Debugf("recorded run %d in %s", id, dbPath)
	return nil
}
