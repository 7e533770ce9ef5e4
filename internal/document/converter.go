// Package document extracts plain text from uploaded resumes and job descriptions.
package document

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
)

const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"
)

// UnsupportedFormatError is returned for extensions other than .pdf and .docx.
type UnsupportedFormatError struct {
	FileName  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("unsupported format %s for %q: only .pdf and .docx are allowed", ext, e.FileName)
}

// Supported reports whether the file name has a convertible extension.
func Supported(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ExtPDF, ExtDOCX:
		return true
	}
	return false
}

// Converter turns document bytes into text. PDFs go through the remote parser
// first when one is configured and fall back to local extraction.
type Converter struct {
	remote  *RemoteParser
	pdfText func([]byte) (string, error)
	logger  *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithRemoteParser enables the external PDF parsing API. An empty URL leaves it disabled.
func WithRemoteParser(url string, timeout time.Duration) Option {
	return func(c *Converter) {
		if strings.TrimSpace(url) != "" {
			c.remote = NewRemoteParser(url, timeout)
		}
	}
}

func New(log *zap.Logger, opts ...Option) *Converter {
	c := &Converter{
		pdfText: extractPDF,
		logger:  logger.ForStage(log, "document"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert returns the document text. An empty string without error means the
// document holds no extractable text.
func (c *Converter) Convert(ctx context.Context, data []byte, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))

	switch ext {
	case ExtPDF:
		return c.convertPDF(ctx, data, fileName)
	case ExtDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return "", fmt.Errorf("extract docx %q: %w", fileName, err)
		}
		return text, nil
	default:
		return "", &UnsupportedFormatError{FileName: fileName, Extension: ext}
	}
}

func (c *Converter) convertPDF(ctx context.Context, data []byte, fileName string) (string, error) {
	if c.remote != nil {
		text, err := c.remote.Parse(ctx, data)
		if err == nil {
			return normalizeWhitespace(text), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		c.logger.Warn("external pdf parser failed; falling back to local extraction",
			logger.File(fileName),
			zap.Error(err),
		)
	}

	text, err := c.pdfText(data)
	if err != nil {
		return "", fmt.Errorf("extract pdf %q: %w", fileName, err)
	}
	return text, nil
}

var (
	inlineSpace = regexp.MustCompile(`[ \t\r\f\v]+`)
	lineBreaks  = regexp.MustCompile(`\s*\n\s*`)
)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = inlineSpace.ReplaceAllString(s, " ")
	s = lineBreaks.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
