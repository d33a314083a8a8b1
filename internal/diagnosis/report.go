package diagnosis

import (
	"fmt"
	"strings"
	"time"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/taxonomy"
)

// Report renders the downloadable plain-text summary of a diagnosis.
func Report(r *Result) string {
	var b strings.Builder
	b.WriteString("LUNG CANCER AI DIAGNOSIS REPORT\n")
	b.WriteString("================================\n\n")
	fmt.Fprintf(&b, "Analysis Date: %s\n", r.Timestamp.Format("2006-01-02"))
	fmt.Fprintf(&b, "Analysis Time: %s\n\n", r.Timestamp.Format("15:04:05"))
	fmt.Fprintf(&b, "DIAGNOSIS: %s\n", r.PredictedClass)
	fmt.Fprintf(&b, "Confidence: %.2f%%\n\n", r.Confidence)
	b.WriteString("PROBABILITY DISTRIBUTION:\n")
	for _, class := range taxonomy.Classes() {
		fmt.Fprintf(&b, "- %s: %.2f%%\n", class.Name, r.Probabilities[class.Name])
	}
	b.WriteString("\nRECOMMENDED ACTION:\n")
	b.WriteString(r.ClassInfo.Action)
	b.WriteString("\n\nDISCLAIMER:\n")
	b.WriteString("This AI analysis is for assistance only. Final diagnosis\n")
	b.WriteString("must be made by qualified medical professionals.\n")
	return b.String()
}

// ReportFilename names the report download after the analysis moment.
func ReportFilename(ts time.Time) string {
	return fmt.Sprintf("lung_cancer_report_%s.txt", ts.Format("20060102_150405"))
}
