// Package ingestion loads résumé text from plain-text, Markdown, PDF and DOCX files.
package ingestion

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Format is a supported résumé file format
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// ErrUnsupportedFormat is returned for file extensions the loader does not read
var ErrUnsupportedFormat = errors.New("unsupported resume format")

// FormatOf maps a filename extension onto a Format
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", "":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// LoadResume reads a résumé file, extracts and cleans its text.
func LoadResume(ctx context.Context, path string) (string, *Metadata, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	if _, err := FormatOf(path); err != nil {
		return "", nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	return LoadResumeBytes(ctx, filepath.Base(path), content)
}

// LoadResumeBytes extracts and cleans text from an in-memory résumé file.
func LoadResumeBytes(ctx context.Context, filename string, data []byte) (string, *Metadata, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	format, err := FormatOf(filename)
	if err != nil {
		return "", nil, err
	}

	var raw string
	switch format {
	case FormatPDF:
		raw, err = extractPDF(data)
	case FormatDOCX:
		raw, err = extractDOCX(data)
	default:
		raw = string(data)
	}
	if err != nil {
		return "", nil, fmt.Errorf("extract text from %s: %w", filename, err)
	}

	cleaned := CleanText(raw)
	return cleaned, NewMetadata(filename, format, cleaned, time.Now()), nil
}

// LoadDirectory loads every supported résumé in dir, sorted by filename. Files that
// fail to load are reported as skipped rather than failing the whole directory.
func LoadDirectory(ctx context.Context, dir string) ([]types.ResumeInput, []types.SkippedResume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read resume directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, err := FormatOf(entry.Name()); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	resumes := make([]types.ResumeInput, 0, len(names))
	skipped := make([]types.SkippedResume, 0)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		id := strings.TrimSuffix(name, filepath.Ext(name))
		text, _, err := LoadResume(ctx, filepath.Join(dir, name))
		if err != nil {
			skipped = append(skipped, types.SkippedResume{ResumeID: id, Filename: name, Reason: err.Error()})
			continue
		}
		resumes = append(resumes, types.ResumeInput{ID: id, Filename: name, Text: text})
	}

	return resumes, skipped, nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return buf.String(), nil
}
