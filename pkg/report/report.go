// Package report renders a burn rate report as HTML, with an optional chart
// image and machine readable side artifacts.
package report

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/yurifrl/burnrate/pkg/models"
)

var ErrOutputIO = errors.New("cannot write report")

const (
	DefaultOutputDir = "out"
	DefaultFile      = "chase_stmt.html"
	DefaultTemplate  = "chase_stmt.html.tmpl"
	DefaultCurrency  = "$"
)

// Config is everything the Renderer needs. TemplateDir overrides the
// embedded template when set.
type Config struct {
	TemplateDir  string
	TemplateName string
	OutputDir    string
	OutputFile   string
	Currency     string
	Title        string
	Chart        bool
}

func (c Config) withDefaults() Config {
	if c.TemplateName == "" {
		c.TemplateName = DefaultTemplate
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.OutputFile == "" {
		c.OutputFile = DefaultFile
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if c.Title == "" {
		c.Title = "Monthly burn rate"
	}
	return c
}

type Renderer struct {
	cfg      Config
	logger   *log.Logger
	template *template.Template
}

// New parses the report template once. The Renderer holds no state besides
// its configuration and can render any number of reports.
func New(cfg Config, logger *log.Logger) (*Renderer, error) {
	cfg = cfg.withDefaults()

	var fsys fs.FS = TemplatesFS
	pattern := "templates/*.tmpl"
	if cfg.TemplateDir != "" {
		fsys = os.DirFS(cfg.TemplateDir)
		pattern = "*"
	}

	tmpl, err := template.New("").ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if tmpl.Lookup(cfg.TemplateName) == nil {
		return nil, fmt.Errorf("template %q not found", cfg.TemplateName)
	}

	return &Renderer{
		cfg:      cfg,
		logger:   logger,
		template: tmpl,
	}, nil
}

// DefaultPath is where WriteFile puts the report when no path is given.
func (r *Renderer) DefaultPath() string {
	return filepath.Join(r.cfg.OutputDir, r.cfg.OutputFile)
}

type monthRow struct {
	Label string
	Spend string
	Count int
}

type page struct {
	Title       string
	ID          string
	Source      string
	WindowStart string
	WindowEnd   string
	HasData     bool
	AverageBurn string
	Total       string
	Months      []monthRow
	Warnings    []string
	Chart       string
	Rows        int
	Dropped     int
	Credits     int
	Included    int
}

func (r *Renderer) money(d decimal.Decimal) string {
	return r.cfg.Currency + d.StringFixed(2)
}

func (r *Renderer) page(rep *models.Report, chart string) page {
	months := make([]monthRow, len(rep.Buckets))
	for i, b := range rep.Buckets {
		months[i] = monthRow{Label: b.Label, Spend: r.money(b.Spend), Count: b.Count}
	}
	return page{
		Title:       r.cfg.Title,
		ID:          rep.ID,
		Source:      filepath.Base(rep.Source),
		WindowStart: rep.Window.Start.AddDate(0, 0, 1).Format(time.DateOnly),
		WindowEnd:   rep.Window.End.Format(time.DateOnly),
		HasData:     rep.HasData(),
		AverageBurn: r.money(rep.AverageBurn),
		Total:       r.money(rep.Total),
		Months:      months,
		Warnings:    rep.Warnings,
		Chart:       chart,
		Rows:        rep.Stats.Rows,
		Dropped:     rep.Stats.Dropped,
		Credits:     rep.Stats.Credits,
		Included:    rep.Stats.Included,
	}
}

// Render writes the HTML report to w. chart is the image URL to embed, or
// empty for none.
func (r *Renderer) Render(w io.Writer, rep *models.Report, chart string) error {
	return r.template.ExecuteTemplate(w, r.cfg.TemplateName, r.page(rep, chart))
}

// WriteFile renders rep to path, or to DefaultPath when path is empty,
// creating missing directories. With charts enabled the PNG is written next
// to the HTML file. It returns the path of the HTML file.
func (r *Renderer) WriteFile(rep *models.Report, path string) (string, error) {
	if path == "" {
		path = r.DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutputIO, err)
	}

	var chart string
	if r.cfg.Chart && rep.HasData() {
		chartPath := ChartPath(path)
		if err := WriteChart(chartPath, rep.Buckets); err != nil {
			return "", err
		}
		chart = filepath.Base(chartPath)
		r.logger.Debug("chart written", "path", chartPath)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutputIO, err)
	}
	defer f.Close()

	if err := r.Render(f, rep, chart); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutputIO, err)
	}

	r.logger.Info("report written", "path", path, "months", len(rep.Buckets))
	return path, nil
}

// ChartPath returns the chart image path that goes with an HTML report.
func ChartPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".png"
}
