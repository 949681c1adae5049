// Package rewrite propagates a new version string into the files that declare it.
package rewrite

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/shared/semver"
	"github.com/moby/sys/atomicwriter"
)

// NewService creates a rewrite service. In strict mode a target without the old
// version is an error instead of a warning.
func NewService(logger *slog.Logger, strict bool) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{logger: logger, strict: strict}
}

func (s *service) Plan(targets []Target, oldVersion, newVersion semver.Version) (*Plan, error) {
	oldStr, newStr := oldVersion.String(), newVersion.String()
	plan := &Plan{Old: oldVersion, New: newVersion}

	var missing []error
	for _, target := range targets {
		info, err := os.Stat(target.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", target.Path, err)
		}
		content, err := os.ReadFile(target.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", target.Path, err)
		}

		updated, matched, err := RewriteContent(target.Kind, content, oldStr, newStr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target.Path, err)
		}

		if matched == 0 {
			if s.strict {
				missing = append(missing, fmt.Errorf("%s (%s): %w: %s", target.Path, target.Kind, ErrNoMatch, oldStr))
			} else {
				s.logger.Warn("Old version not found, leaving file unchanged",
					"path", target.Path, "kind", target.Kind, "version", oldStr)
			}
		}

		plan.Files = append(plan.Files, FilePlan{
			Target:       target,
			Original:     content,
			Updated:      updated,
			MatchedLines: matched,
			Mode:         info.Mode().Perm(),
		})
	}

	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}
	return plan, nil
}

func (s *service) Apply(plan *Plan) ([]model.FileChange, error) {
	for _, f := range plan.Files {
		if !f.Changed() {
			continue
		}
		if err := atomicwriter.WriteFile(f.Path, f.Updated, f.Mode); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
		s.logger.Info("Rewrote version", "path", f.Path, "kind", f.Kind,
			"from", plan.Old.String(), "to", plan.New.String(), "lines", f.MatchedLines)
	}
	return plan.Changes(), nil
}

// RewriteContent applies the rule for kind to every line of content and returns
// the new content with the number of lines that changed. Lines that do not match
// the rule, and all line endings, are kept byte for byte.
func RewriteContent(kind Kind, content []byte, oldVersion, newVersion string) ([]byte, int, error) {
	rule, ok := rules[kind]
	if !ok {
		return nil, 0, fmt.Errorf("unknown file kind %q", kind)
	}

	var out bytes.Buffer
	out.Grow(len(content))
	matched := 0

	for _, raw := range bytes.SplitAfter(content, []byte("\n")) {
		if len(raw) == 0 {
			continue
		}
		line, ending := splitLineEnding(string(raw))
		if rewritten, n := rule(line, oldVersion, newVersion); n > 0 {
			line = rewritten
			matched++
		}
		out.WriteString(line)
		out.WriteString(ending)
	}

	return out.Bytes(), matched, nil
}

type lineRule func(line, oldVersion, newVersion string) (string, int)

var rules = map[Kind]lineRule{
	KindPackageInit: rewritePackageInit,
	KindCitation:    rewriteCitation,
	KindManifest:    rewriteManifest,
	KindReadme:      rewriteReadme,
}

func rewritePackageInit(line, oldVersion, newVersion string) (string, int) {
	return replaceQuoted(line, oldVersion, newVersion)
}

func rewriteCitation(line, oldVersion, newVersion string) (string, int) {
	if !strings.HasPrefix(line, "version:") {
		return line, 0
	}
	return replaceToken(line, oldVersion, newVersion)
}

func rewriteManifest(line, oldVersion, newVersion string) (string, int) {
	if !strings.HasPrefix(line, "version") {
		return line, 0
	}
	return replaceQuoted(line, oldVersion, newVersion)
}

func rewriteReadme(line, oldVersion, newVersion string) (string, int) {
	return replaceToken(line, "Version "+oldVersion, "Version "+newVersion)
}

func replaceQuoted(line, oldVersion, newVersion string) (string, int) {
	n := 0
	for _, q := range []string{`"`, `'`} {
		quotedOld := q + oldVersion + q
		if c := strings.Count(line, quotedOld); c > 0 {
			line = strings.ReplaceAll(line, quotedOld, q+newVersion+q)
			n += c
		}
	}
	return line, n
}

// replaceToken replaces occurrences of token that are not glued to other version
// characters, so 1.2.1 never matches inside 1.2.10 or 11.2.1.
func replaceToken(line, token, replacement string) (string, int) {
	var b strings.Builder
	n := 0
	i := 0
	for {
		j := strings.Index(line[i:], token)
		if j < 0 {
			b.WriteString(line[i:])
			break
		}
		start := i + j
		end := start + len(token)
		if !tokenBoundary(line, start, end) {
			b.WriteString(line[i : start+1])
			i = start + 1
			continue
		}
		b.WriteString(line[i:start])
		b.WriteString(replacement)
		n++
		i = end
	}
	return b.String(), n
}

func tokenBoundary(line string, start, end int) bool {
	if start > 0 && isVersionChar(line[start-1]) {
		return false
	}
	if end < len(line) {
		next := line[end]
		if isDigit(next) {
			return false
		}
		// a trailing full stop ends a sentence, a dot followed by a digit extends the version
		if next == '.' && end+1 < len(line) && isDigit(line[end+1]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isVersionChar(c byte) bool { return isDigit(c) || c == '.' }

func splitLineEnding(raw string) (string, string) {
	switch {
	case strings.HasSuffix(raw, "\r\n"):
		return raw[:len(raw)-2], "\r\n"
	case strings.HasSuffix(raw, "\n"):
		return raw[:len(raw)-1], "\n"
	default:
		return raw, ""
	}
}
