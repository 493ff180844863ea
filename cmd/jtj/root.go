package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/chazu/jtj/archive"
	"github.com/chazu/jtj/config"
	"github.com/chazu/jtj/emit"
	"github.com/chazu/jtj/pipeline"
	"github.com/chazu/jtj/report"
)

var log = commonlog.GetLogger("jtj")

type options struct {
	classpath  string
	out        string
	configPath string
	naming     string
	dumpModel  string
	reportDB   string
	color      string
	verbose    int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "jtj",
		Short: "Generate PHP stubs and JPHP bridges from a jar",
		Long: `jtj inspects the single jar on its search path and generates:

  sdk/                     PHP stubs for IDEs and static analysis
  tmp/javaprepare/JTJ/     JPHP adapter classes and the extension
                           that registers them

Only public methods whose return type can cross into PHP are bridged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, false)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.classpath, "classpath", "", "jar search list, separated like $CLASSPATH (default: [archive] search, then $CLASSPATH)")
	pf.StringVarP(&opts.out, "out", "o", "", "output root for sdk/ and tmp/ (default \".\")")
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default is the nearest jtj.toml)")
	pf.StringVar(&opts.naming, "manifest-naming", "", "registration extension naming: hash or random")
	pf.StringVar(&opts.dumpModel, "dump-model", "", "write a CBOR snapshot of the bridge model to this file")
	pf.StringVar(&opts.reportDB, "report-db", "", "record the run in this SQLite database")
	pf.StringVar(&opts.color, "color", "", "report colors: auto, always or never")
	pf.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity (repeatable)")

	root.AddCommand(newGenerateCmd(opts), newInspectCmd(opts), newVersionCmd())
	return root
}

// loadConfig merges jtj.toml, the environment and flags, in that order of
// increasing precedence.
func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if opts.classpath != "" {
		cfg.Archive.Search = archive.SplitSearchList(opts.classpath)
	} else if len(cfg.Archive.Search) == 0 {
		cfg.Archive.Search = archive.SplitSearchList(os.Getenv("CLASSPATH"))
	}
	if opts.out != "" {
		cfg.Output.Dir = opts.out
	}
	if opts.naming != "" {
		cfg.Manifest.Naming = opts.naming
	}
	if opts.reportDB != "" {
		cfg.Report.Database = opts.reportDB
	}
	if opts.color != "" {
		cfg.Report.Color = opts.color
	}
	return cfg, nil
}

var verbosities = map[string]int{
	"error":   0,
	"warning": 1,
	"notice":  2,
	"info":    3,
	"debug":   4,
}

func configureLogging(level string, verbose int) error {
	v, ok := verbosities[strings.ToLower(level)]
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}
	commonlog.Configure(v+verbose, nil)
	return nil
}

func pipelineConfig(cfg *config.Config, opts *options, noEmit bool) (pipeline.Config, error) {
	naming, err := emit.ParseNaming(cfg.Manifest.Naming)
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{
		Search:        cfg.Archive.Search,
		Exclude:       cfg.Archive.Exclude,
		Provided:      cfg.Loader.Provided,
		SkipSynthetic: cfg.Loader.SkipSynthetic,
		SDKDir:        cfg.SDKDir(),
		BridgesDir:    cfg.BridgesDir(),
		Naming:        naming,
		NoEmit:        noEmit,
		DumpModel:     opts.dumpModel,
		ReportDB:      cfg.Report.Database,
	}, nil
}

func runGenerate(cmd *cobra.Command, opts *options, noEmit bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := configureLogging(cfg.Log.Level, opts.verbose); err != nil {
		return err
	}
	pcfg, err := pipelineConfig(cfg, opts, noEmit)
	if err != nil {
		return err
	}
	color, err := report.ParseColor(cfg.Report.Color)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(cmd.Context(), pcfg, report.New(cmd.OutOrStdout(), color))
	if err != nil {
		return err
	}
	if res.Manifest != "" {
		log.Noticef("registered %d types in %s", len(res.Model.Types()), res.Manifest)
	}
	return nil
}
