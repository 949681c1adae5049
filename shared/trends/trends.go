// Package trends renders the stored run history.
package trends

import (
	"fmt"
	"io"

	"github.com/drugner/drugdict/service/storage"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderReleaseHistory prints an ASCII table of stored release runs.
func RenderReleaseHistory(w io.Writer, records []storage.ReleaseRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No release runs recorded")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Releases")
	t.AppendHeader(table.Row{"ID", "When", "Old", "New", "Files", "Commit", "Pushed", "Dry Run", "Status"})
	for _, r := range records {
		commit := r.CommitHash
		if len(commit) > 12 {
			commit = commit[:12]
		}
		t.AppendRow(table.Row{r.ID, humanize.Time(r.StartedAt), r.OldVersion, r.NewVersion, r.FilesChanged, commit, r.Pushed, r.DryRun, r.Status})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// RenderFetchHistory prints an ASCII table of stored acquisition runs.
func RenderFetchHistory(w io.Writer, records []storage.FetchRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No fetch runs recorded")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Fetches")
	t.AppendHeader(table.Row{"ID", "When", "Steps OK", "Failed", "Duration", "Status", "Error"})
	for _, r := range records {
		t.AppendRow(table.Row{r.ID, humanize.Time(r.StartedAt), r.StepsOK, r.StepsFailed, fmt.Sprintf("%dms", r.DurationMS), r.Status, r.Error})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
