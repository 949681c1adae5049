// Package jsonoutput writes run summaries and history as indented JSON.
package jsonoutput

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/storage"
)

// ReleaseReport is the JSON document printed after a release run.
type ReleaseReport struct {
	GeneratedAt string               `json:"generated_at"`
	Verified    bool                 `json:"verified"`
	Release     model.ReleaseSummary `json:"release"`
}

// FetchReport is the JSON document printed after a fetch run.
type FetchReport struct {
	GeneratedAt string             `json:"generated_at"`
	Failed      bool               `json:"failed"`
	Fetch       model.FetchSummary `json:"fetch"`
}

// HistoryReport is the JSON document printed by the history command.
type HistoryReport struct {
	GeneratedAt string                  `json:"generated_at"`
	Releases    []storage.ReleaseRecord `json:"releases,omitempty"`
	Fetches     []storage.FetchRecord   `json:"fetches,omitempty"`
}

// OutputReleaseJSON writes a release summary as JSON.
func OutputReleaseJSON(w io.Writer, summary model.ReleaseSummary) error {
	return printJSON(w, BuildReleaseReport(summary, now()))
}

// BuildReleaseReport builds the release JSON report model.
func BuildReleaseReport(summary model.ReleaseSummary, generatedAt string) ReleaseReport {
	verified := true
	for _, v := range summary.Verification {
		if !v.OK {
			verified = false
			break
		}
	}
	return ReleaseReport{GeneratedAt: generatedAt, Verified: verified, Release: summary}
}

// OutputFetchJSON writes a fetch summary as JSON.
func OutputFetchJSON(w io.Writer, summary model.FetchSummary) error {
	return printJSON(w, FetchReport{GeneratedAt: now(), Failed: summary.Failed(), Fetch: summary})
}

// OutputHistoryJSON writes stored runs as JSON.
func OutputHistoryJSON(w io.Writer, releases []storage.ReleaseRecord, fetches []storage.FetchRecord) error {
	return printJSON(w, HistoryReport{GeneratedAt: now(), Releases: releases, Fetches: fetches})
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
