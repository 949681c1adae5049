package output

import (
	"io"
	"os"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/storage"
	jsonoutput "github.com/drugner/drugdict/shared/json_output"
	"github.com/drugner/drugdict/shared/spinner"
	summarytable "github.com/drugner/drugdict/shared/summary_table"
	"github.com/drugner/drugdict/shared/trends"
)

// Format represents the output format type
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Renderer defines the interface for drawing tables
type Renderer interface {
	DrawReleaseTable(summary model.ReleaseSummary)
	DrawFetchTable(summary model.FetchSummary)
	DrawHistoryTables(releases []storage.ReleaseRecord, fetches []storage.FetchRecord)
	OutputReleaseJSON(summary model.ReleaseSummary) error
	OutputFetchJSON(summary model.FetchSummary) error
	OutputHistoryJSON(releases []storage.ReleaseRecord, fetches []storage.FetchRecord) error
	StopSpinner()
}

type realRenderer struct {
	w io.Writer
}

func (r *realRenderer) DrawReleaseTable(summary model.ReleaseSummary) {
	summarytable.DrawReleaseTable(r.w, summary)
}

func (r *realRenderer) DrawFetchTable(summary model.FetchSummary) {
	summarytable.DrawFetchTable(r.w, summary)
}

func (r *realRenderer) DrawHistoryTables(releases []storage.ReleaseRecord, fetches []storage.FetchRecord) {
	if releases != nil {
		trends.RenderReleaseHistory(r.w, releases)
	}
	if fetches != nil {
		trends.RenderFetchHistory(r.w, fetches)
	}
}

func (r *realRenderer) OutputReleaseJSON(summary model.ReleaseSummary) error {
	return jsonoutput.OutputReleaseJSON(r.w, summary)
}

func (r *realRenderer) OutputFetchJSON(summary model.FetchSummary) error {
	return jsonoutput.OutputFetchJSON(r.w, summary)
}

func (r *realRenderer) OutputHistoryJSON(releases []storage.ReleaseRecord, fetches []storage.FetchRecord) error {
	return jsonoutput.OutputHistoryJSON(r.w, releases, fetches)
}

func (r *realRenderer) StopSpinner() {
	spinner.StopSpinner()
}

func newRealRenderer() *realRenderer {
	return &realRenderer{w: os.Stdout}
}

// service is the internal implementation
type service struct {
	format   Format
	renderer Renderer
}

// Service defines the interface for output operations
type Service interface {
	Format() Format
	RenderRelease(summary model.ReleaseSummary) error
	RenderFetch(summary model.FetchSummary) error
	RenderHistory(releases []storage.ReleaseRecord, fetches []storage.FetchRecord) error
	StopSpinner()
}
