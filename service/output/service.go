// Package output provides a service for rendering results to the console.
package output

import (
	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/storage"
)

// NewService creates a new output service with the specified format
func NewService(format string) Service {
	return newService(format, newRealRenderer())
}

func newService(format string, renderer Renderer) Service {
	f := FormatTable
	if format == "json" {
		f = FormatJSON
	}

	return &service{
		format:   f,
		renderer: renderer,
	}
}

func (s *service) Format() Format {
	return s.format
}

func (s *service) RenderRelease(summary model.ReleaseSummary) error {
	s.renderer.StopSpinner()
	if s.format == FormatJSON {
		return s.renderer.OutputReleaseJSON(summary)
	}
	s.renderer.DrawReleaseTable(summary)
	return nil
}

func (s *service) RenderFetch(summary model.FetchSummary) error {
	s.renderer.StopSpinner()
	if s.format == FormatJSON {
		return s.renderer.OutputFetchJSON(summary)
	}
	s.renderer.DrawFetchTable(summary)
	return nil
}

func (s *service) RenderHistory(releases []storage.ReleaseRecord, fetches []storage.FetchRecord) error {
	if s.format == FormatJSON {
		return s.renderer.OutputHistoryJSON(releases, fetches)
	}
	s.renderer.DrawHistoryTables(releases, fetches)
	return nil
}

func (s *service) StopSpinner() {
	s.renderer.StopSpinner()
}
