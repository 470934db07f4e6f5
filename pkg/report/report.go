// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kraklabs/spotbench/internal/contract"
	"github.com/kraklabs/spotbench/pkg/findings"
)

// ErrTooLarge is returned by ReadFile for reports over the size limit.
var ErrTooLarge = errors.New("report too large")

// Report is the decoded content of a BugCollection document.
type Report struct {
	// Version is the analyzer version that wrote the report.
	Version     string
	ProjectName string
	Bugs        []findings.Bug
}

// XML shapes of the elements we read. Everything else is skipped.
type (
	xmlProject struct {
		Name string `xml:"projectName,attr"`
	}

	xmlSourceLine struct {
		Primary    bool   `xml:"primary,attr"`
		Start      int    `xml:"start,attr"`
		SourcePath string `xml:"sourcepath,attr"`
	}

	xmlMethod struct {
		ClassName  string         `xml:"classname,attr"`
		Name       string         `xml:"name,attr"`
		Signature  string         `xml:"signature,attr"`
		Primary    bool           `xml:"primary,attr"`
		SourceLine *xmlSourceLine `xml:"SourceLine"`
	}

	xmlClass struct {
		ClassName  string         `xml:"classname,attr"`
		Primary    bool           `xml:"primary,attr"`
		SourceLine *xmlSourceLine `xml:"SourceLine"`
	}

	xmlBugInstance struct {
		Type         string          `xml:"type,attr"`
		Category     string          `xml:"category,attr"`
		Priority     int             `xml:"priority,attr"`
		Rank         int             `xml:"rank,attr"`
		ShortMessage string          `xml:"ShortMessage"`
		LongMessage  string          `xml:"LongMessage"`
		Classes      []xmlClass      `xml:"Class"`
		Methods      []xmlMethod     `xml:"Method"`
		SourceLines  []xmlSourceLine `xml:"SourceLine"`
	}
)

// Reader decodes analysis reports.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader. A nil logger uses slog.Default().
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadFile opens and decodes the report at path. Reports larger than
// contract.MaxReportBytes are rejected before decoding.
func (r *Reader) ReadFile(ctx context.Context, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat report: %w", err)
	}
	if res := contract.ValidateReportSize(info.Size()); !res.OK {
		return nil, fmt.Errorf("%w: %s: %s", ErrTooLarge, path, res.Message)
	}

	r.logger.Debug("report.read.start", "path", path, "bytes", info.Size())
	rep, err := r.Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.logger.Debug("report.read.done", "path", path, "bugs", len(rep.Bugs))
	return rep, nil
}

// Read decodes a report from src. It stops with ctx.Err() when the context
// is cancelled between bug instances.
func (r *Reader) Read(ctx context.Context, src io.Reader) (*Report, error) {
	dec := xml.NewDecoder(src)
	rep := &Report{}
	sawRoot := false

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "BugCollection":
			for _, a := range start.Attr {
				if a.Name.Local == "version" {
					rep.Version = a.Value
				}
			}
			sawRoot = true

		case "Project":
			var p xmlProject
			if err := dec.DecodeElement(&p, &start); err != nil {
				return nil, fmt.Errorf("decode project: %w", err)
			}
			rep.ProjectName = p.Name

		case "BugInstance":
			var bi xmlBugInstance
			if err := dec.DecodeElement(&bi, &start); err != nil {
				return nil, fmt.Errorf("decode bug %d: %w", len(rep.Bugs), err)
			}
			rep.Bugs = append(rep.Bugs, bi.toBug())

		default:
			if !sawRoot {
				continue
			}
			// Summaries, class features and error sections are not needed.
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("skip %s: %w", start.Name.Local, err)
			}
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("decode report: no BugCollection element")
	}
	return rep, nil
}

func (bi *xmlBugInstance) toBug() findings.Bug {
	b := findings.Bug{
		Type:     bi.Type,
		Category: bi.Category,
		Rank:     bi.Rank,
		Priority: bi.Priority,
		Message:  bi.message(),
	}

	if m := bi.primaryMethod(); m != nil {
		b.Method = &findings.Method{
			ClassName: m.ClassName,
			Name:      m.Name,
			Signature: m.Signature,
		}
	}
	if sl := bi.primarySourceLine(); sl != nil {
		b.SourcePath = sl.SourcePath
		b.StartLine = sl.Start
	}
	return b
}

func (bi *xmlBugInstance) message() string {
	if s := strings.TrimSpace(bi.LongMessage); s != "" {
		return s
	}
	if s := strings.TrimSpace(bi.ShortMessage); s != "" {
		return s
	}
	return bi.Type
}

// primaryMethod returns the method flagged primary, else the first one.
func (bi *xmlBugInstance) primaryMethod() *xmlMethod {
	for i := range bi.Methods {
		if bi.Methods[i].Primary {
			return &bi.Methods[i]
		}
	}
	if len(bi.Methods) > 0 {
		return &bi.Methods[0]
	}
	return nil
}

// primarySourceLine prefers the bug's own primary SourceLine, then its first
// SourceLine, then the line range of the primary method and finally the
// primary class.
func (bi *xmlBugInstance) primarySourceLine() *xmlSourceLine {
	for i := range bi.SourceLines {
		if bi.SourceLines[i].Primary {
			return &bi.SourceLines[i]
		}
	}
	if len(bi.SourceLines) > 0 {
		return &bi.SourceLines[0]
	}
	if m := bi.primaryMethod(); m != nil && m.SourceLine != nil {
		return m.SourceLine
	}
	for i := range bi.Classes {
		if bi.Classes[i].Primary && bi.Classes[i].SourceLine != nil {
			return bi.Classes[i].SourceLine
		}
	}
	return nil
}
