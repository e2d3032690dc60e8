package report

import (
	"fmt"
	"io"
	"time"

	"github.com/yurifrl/burnrate/pkg/models"
	"gopkg.in/yaml.v3"
)

type summaryMonth struct {
	Month        string `yaml:"month"`
	Spend        string `yaml:"spend"`
	Transactions int    `yaml:"transactions"`
}

type summary struct {
	ID          string         `yaml:"id"`
	Source      string         `yaml:"source"`
	GeneratedAt string         `yaml:"generated_at"`
	WindowStart string         `yaml:"window_start"`
	WindowEnd   string         `yaml:"window_end"`
	AverageBurn *string        `yaml:"average_burn"`
	Total       string         `yaml:"total"`
	Months      []summaryMonth `yaml:"months"`
	Stats       models.Stats   `yaml:"stats"`
	Warnings    []string       `yaml:"warnings,omitempty"`
}

// WriteSummary writes rep as YAML. average_burn is null when no month had
// spend.
func WriteSummary(w io.Writer, rep *models.Report) error {
	s := summary{
		ID:          rep.ID,
		Source:      rep.Source,
		GeneratedAt: rep.GeneratedAt.Format(time.DateOnly),
		WindowStart: rep.Window.Start.AddDate(0, 0, 1).Format(time.DateOnly),
		WindowEnd:   rep.Window.End.Format(time.DateOnly),
		Total:       rep.Total.StringFixed(2),
		Months:      make([]summaryMonth, 0, len(rep.Buckets)),
		Stats:       rep.Stats,
		Warnings:    rep.Warnings,
	}
	if rep.HasData() {
		avg := rep.AverageBurn.StringFixed(2)
		s.AverageBurn = &avg
	}
	for _, b := range rep.Buckets {
		s.Months = append(s.Months, summaryMonth{Month: b.Label, Spend: b.Spend.StringFixed(2), Transactions: b.Count})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return enc.Close()
}
