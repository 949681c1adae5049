// Package summarytable renders release and fetch run summaries as tables.
package summarytable

import (
	"fmt"
	"io"
	"time"

	"github.com/drugner/drugdict/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DrawReleaseTable renders the files touched by a release and how it was published.
func DrawReleaseTable(w io.Writer, summary model.ReleaseSummary) {
	title := fmt.Sprintf("\n📦 Release %s -> %s", summary.OldVersion, summary.NewVersion)
	if summary.DryRun {
		title += text.FgYellow.Sprint(" (dry run)")
	}
	fmt.Fprintln(w, title)

	verified := make(map[string]model.VerifyResult, len(summary.Verification))
	for _, v := range summary.Verification {
		verified[v.Path] = v
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"File", "Kind", "Lines", "Status", "Verified"})
	for _, f := range summary.Files {
		status := text.FgGreen.Sprint("updated")
		if !f.Changed {
			status = text.FgYellow.Sprint("unchanged")
		}
		check := "-"
		if v, ok := verified[f.Path]; ok {
			check = text.FgGreen.Sprint("yes")
			if !v.OK {
				check = text.FgRed.Sprint(v.Message)
			}
		}
		t.AppendRow(table.Row{f.Path, f.Kind, f.MatchedLines, status, check})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	switch {
	case summary.DryRun:
		fmt.Fprintln(w, "   Nothing written, staged or pushed")
	case summary.CommitHash != "":
		fmt.Fprintf(w, "   Commit %s", shortHash(summary.CommitHash))
		if summary.Pushed {
			fmt.Fprint(w, text.FgGreen.Sprint(" pushed"))
		} else {
			fmt.Fprint(w, text.FgYellow.Sprint(" not pushed"))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "   Finished in %s\n", summary.Duration.Round(time.Millisecond))
}

// DrawFetchTable renders the outcome of each acquisition step.
func DrawFetchTable(w io.Writer, summary model.FetchSummary) {
	fmt.Fprintln(w, "\n💊 Vocabulary acquisition")

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Step", "Status", "Duration", "Error"})
	for _, st := range summary.Steps {
		t.AppendRow(table.Row{st.Name, colorStatus(st.Status), st.Duration.Round(time.Millisecond), st.Error})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	if summary.DrugBankURL != "" {
		fmt.Fprintf(w, "   DrugBank release: %s\n", summary.DrugBankURL)
	}
	for _, c := range summary.Copied {
		fmt.Fprintf(w, "   Copied %s\n", c)
	}
	fmt.Fprintf(w, "   Finished in %s\n", summary.Duration.Round(time.Millisecond))
}

func colorStatus(status string) string {
	switch status {
	case model.StepOK:
		return text.FgGreen.Sprint(status)
	case model.StepFailed:
		return text.FgRed.Sprint(status)
	default:
		return text.FgYellow.Sprint(status)
	}
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
