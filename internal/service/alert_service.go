package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alvinking254/dircap/internal/domain"
	"github.com/alvinking254/dircap/internal/report"
)

// AlertService turns one dircap run into one alert email: it loads the
// JSON log, summarizes it, formats the message and hands it to the
// notifier. Each run is independent; nothing is kept between runs.
type AlertService struct {
	notifier domain.INotifier
	now      func() time.Time
}

func NewAlertService(notifier domain.INotifier) *AlertService {
	return &AlertService{
		notifier: notifier,
		now:      time.Now,
	}
}

// Run executes the whole pipeline for the given log paths. The text log
// is only echoed in the email, never opened.
func (s *AlertService) Run(ctx context.Context, logTxt, logJSON string) error {
	payload := report.Load(logJSON)
	summary, warnings, results := report.Summarize(payload)
	msg := s.BuildMessage(summary, warnings, results, logTxt, logJSON)
	return s.notifier.Send(ctx, msg.Subject, msg.Body)
}

// BuildMessage formats the alert subject and plaintext body. Only WARN
// and OVER rows are listed; OK rows are noise for alert emails.
func (s *AlertService) BuildMessage(summary domain.Summary, warnings []string, results []domain.Result, logTxt, logJSON string) domain.Message {
	var affected []domain.Result
	for _, r := range results {
		if r.Affected() {
			affected = append(affected, r)
		}
	}

	subject := fmt.Sprintf("dircap alert: OVER=%d WARN=%d", summary.Over, summary.Warn)

	var lines []string
	lines = append(lines, "dircap detected a cap breach.")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Summary: OK=%d  WARN=%d  OVER=%d", summary.OK, summary.Warn, summary.Over))
	lines = append(lines, fmt.Sprintf("Time:    %s", s.now().Format("2006-01-02 15:04:05")))
	lines = append(lines, "")

	if len(affected) > 0 {
		lines = append(lines, "Affected folders (WARN/OVER):")
		for _, r := range affected {
			lines = append(lines, formatRow(r))
		}
		lines = append(lines, "")
	} else {
		// A high-severity exit code paired with an unparseable or empty
		// JSON log still produces an email; this line is the tell.
		lines = append(lines, "Affected folders: (could not parse details from JSON)")
		lines = append(lines, "")
	}

	if len(warnings) > 0 {
		lines = append(lines, "Warnings:")
		for _, w := range warnings {
			lines = append(lines, fmt.Sprintf("- %s", w))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "Logs:")
	lines = append(lines, fmt.Sprintf("- Text: %s", logTxt))
	lines = append(lines, fmt.Sprintf("- JSON: %s", logJSON))
	lines = append(lines, "")
	lines = append(lines, "Tip: Open the text log for the full table output.")

	return domain.Message{Subject: subject, Body: strings.Join(lines, "\n")}
}

// formatRow renders one affected record, compact and column-aligned:
//
//	- WARN   91%  logs  |  /var/logs (910B/1000B)
//
// The byte suffix appears only when both byte fields are present.
func formatRow(r domain.Result) string {
	extra := ""
	if r.UsedBytes != nil && r.LimitBytes != nil {
		extra = fmt.Sprintf(" (%dB/%dB)", *r.UsedBytes, *r.LimitBytes)
	}
	return fmt.Sprintf("- %-4s %4s%%  %s  |  %s%s", r.Status, r.PctUsed, r.Name, r.Path, extra)
}
