package cli

import (
	"fmt"
	"strings"

	"github.com/siftline/siftline/internal/classify"
	"github.com/siftline/siftline/internal/storage"
)

// RenderReport formats a classification report for terminal output. Up to
// sampleRows transactions per bucket are listed under the aggregates.
func RenderReport(report *classify.Report, sampleRows int) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Classification Report"))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("run %s · %s", report.RunID, report.Duration())))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %d\n", BoldStyle.Render("Transactions:"), report.TotalCount))
	b.WriteString(fmt.Sprintf("%s %.2f\n", BoldStyle.Render("Total amount:"), report.TotalAmount))

	for _, bucket := range report.Buckets {
		b.WriteString("\n")
		b.WriteString(BucketNameStyle.Render(bucket.Name))
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %d matched · %.2f total", bucket.MatchCount, bucket.AmountSum)))
		b.WriteString("\n")

		for i, txn := range bucket.Transactions {
			if i >= sampleRows {
				b.WriteString(SubtleStyle.Render(fmt.Sprintf("  … and %d more", bucket.MatchCount-sampleRows)))
				b.WriteString("\n")
				break
			}
			reconciled := "absent"
			if rec, ok := txn.Reconciled(); ok {
				reconciled = fmt.Sprintf("%.2f", rec)
			}
			b.WriteString(fmt.Sprintf("  #%d  amount=%.2f  reconciled=%s  status=%s\n",
				txn.ID, txn.Amount, reconciled, txn.Status.Kind))
		}
	}

	return b.String()
}

// RenderRuns formats persisted run summaries, one block per run.
func RenderRuns(runs []storage.RunSummary) string {
	if len(runs) == 0 {
		return SubtleStyle.Render("No classification runs recorded.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Classification Runs"))
	b.WriteString("\n")

	for _, run := range runs {
		b.WriteString(fmt.Sprintf("\n%s %s\n", BoldStyle.Render(run.ID.String()),
			SubtleStyle.Render(run.StartedAt.Format("2006-01-02 15:04:05"))))
		b.WriteString(fmt.Sprintf("  %d transactions · %.2f total\n", run.TotalCount, run.TotalAmount))
		for _, bucket := range run.Buckets {
			b.WriteString(fmt.Sprintf("  %s: %d matched · %.2f\n",
				BucketNameStyle.Render(bucket.Name), bucket.MatchCount, bucket.AmountSum))
		}
	}

	return b.String()
}
