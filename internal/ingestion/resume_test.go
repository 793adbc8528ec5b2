package ingestion

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><w:document xmlns:w="urn:w"><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
		wantErr  bool
	}{
		{"resume.txt", FormatText, false},
		{"README", FormatText, false},
		{"resume.MD", FormatMarkdown, false},
		{"resume.pdf", FormatPDF, false},
		{"resume.docx", FormatDOCX, false},
		{"resume.doc", "", true},
		{"photo.png", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			format, err := FormatOf(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestLoadResume_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jane.md")
	require.NoError(t, os.WriteFile(path, []byte("# Jane\n\nGo   engineer (Jan 2020 - Present)\r\n"), 0644))

	text, meta, err := LoadResume(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# Jane\n\nGo engineer (Jan 2020 - Present)", text)
	assert.Equal(t, "jane.md", meta.Filename)
	assert.Equal(t, FormatMarkdown, meta.Format)
	assert.Len(t, meta.Hash, 64)
}

func TestLoadResume_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadResume(context.Background(), filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")

	_, _, err = LoadResume(context.Background(), filepath.Join(dir, "resume.rtf"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = LoadResume(ctx, filepath.Join(dir, "resume.txt"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadResumeBytes_DOCX(t *testing.T) {
	data := buildDOCX(t, `<w:p><w:r><w:t>Senior Engineer</w:t></w:r></w:p><w:p><w:r><w:t>Kafka and   Redis</w:t></w:r></w:p>`)

	text, meta, err := LoadResumeBytes(context.Background(), "cv.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer\nKafka and Redis", text)
	assert.Equal(t, FormatDOCX, meta.Format)
}

func TestLoadResumeBytes_BadBinary(t *testing.T) {
	_, _, err := LoadResumeBytes(context.Background(), "cv.pdf", []byte("not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract text from cv.pdf")

	_, _, err = LoadResumeBytes(context.Background(), "cv.docx", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty docx data")
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b_senior.txt": "Senior Backend Engineer with Go and Kafka",
		"a_mid.md":     "Backend developer, Python",
		"notes.json":   "{}",
		".hidden.txt":  "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("garbage"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0755))

	resumes, skipped, err := LoadDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, resumes, 2)
	assert.Equal(t, "a_mid", resumes[0].ID)
	assert.Equal(t, "a_mid.md", resumes[0].Filename)
	assert.Equal(t, "Backend developer, Python", resumes[0].Text)
	assert.Equal(t, "b_senior", resumes[1].ID)

	require.Len(t, skipped, 1)
	assert.Equal(t, "broken.pdf", skipped[0].Filename)
	assert.NotEmpty(t, skipped[0].Reason)
}

func TestLoadDirectory_Missing(t *testing.T) {
	_, _, err := LoadDirectory(context.Background(), "/nonexistent/resumes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read resume directory")
}
