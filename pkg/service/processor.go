package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/burnrate/pkg/burn"
	"github.com/yurifrl/burnrate/pkg/config"
	"github.com/yurifrl/burnrate/pkg/csv"
	"github.com/yurifrl/burnrate/pkg/models"
	"github.com/yurifrl/burnrate/pkg/parser"
	"github.com/yurifrl/burnrate/pkg/report"
)

// Options describe a single run.
type Options struct {
	StatementPath string
	OutputPath    string // empty means the renderer default
	CSVPath       string
	SummaryPath   string
	Now           time.Time // zero means time.Now
}

// Result is what a run produced.
type Result struct {
	Report      *models.Report
	OutputPath  string
	DefaultPath bool
}

type Processor struct {
	config   *config.Config
	logger   *log.Logger
	parser   *parser.Parser
	calc     *burn.Calculator
	renderer *report.Renderer
}

func NewProcessor(cfg *config.Config, logger *log.Logger) (*Processor, error) {
	renderer, err := report.New(cfg.Renderer(), logger)
	if err != nil {
		return nil, err
	}
	return &Processor{
		config:   cfg,
		logger:   logger,
		parser:   parser.New(logger),
		calc:     burn.New(logger, cfg.DateLayouts),
		renderer: renderer,
	}, nil
}

// Run loads the statement, computes the burn rate and writes the report and
// any requested side artifacts.
func (p *Processor) Run(opts Options) (*Result, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	stmt, err := p.parser.LoadFile(opts.StatementPath)
	if err != nil {
		return nil, err
	}
	p.logger.Info("processing statement", "path", opts.StatementPath, "rows", len(stmt.Records))

	rep, err := p.calc.Build(stmt, now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute burn rate: %w", err)
	}

	out, err := p.renderer.WriteFile(rep, opts.OutputPath)
	if err != nil {
		return nil, err
	}

	if opts.CSVPath != "" {
		if err := p.writeCSV(rep, opts.CSVPath); err != nil {
			return nil, err
		}
	}
	if opts.SummaryPath != "" {
		if err := p.writeSummary(rep, opts.SummaryPath); err != nil {
			return nil, err
		}
	}

	return &Result{Report: rep, OutputPath: out, DefaultPath: opts.OutputPath == ""}, nil
}

func (p *Processor) writeCSV(rep *models.Report, path string) error {
	data, err := csv.Create(csv.MonthlyHeader, rep.Buckets, nil)
	if err != nil {
		return fmt.Errorf("error creating csv: %w", err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", report.ErrOutputIO, err)
	}
	p.logger.Info("monthly csv written", "path", path)
	return nil
}

func (p *Processor) writeSummary(rep *models.Report, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", report.ErrOutputIO, err)
	}
	defer f.Close()

	if err := report.WriteSummary(f, rep); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", report.ErrOutputIO, err)
	}
	p.logger.Info("summary written", "path", path)
	return nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %w", report.ErrOutputIO, err)
	}
	return nil
}
