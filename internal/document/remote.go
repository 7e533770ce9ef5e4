package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultParserTimeout = 30 * time.Second

// RemoteParser calls an external PDF parsing API that accepts a multipart
// "file" field and answers {"text": "..."}.
type RemoteParser struct {
	client *resty.Client
	url    string
}

type parseResult struct {
	Text *string `json:"text"`
}

func NewRemoteParser(url string, timeout time.Duration) *RemoteParser {
	if timeout <= 0 {
		timeout = defaultParserTimeout
	}
	return &RemoteParser{
		client: resty.New().SetTimeout(timeout),
		url:    url,
	}
}

func (p *RemoteParser) Parse(ctx context.Context, data []byte) (string, error) {
	var result parseResult

	resp, err := p.client.R().
		SetContext(ctx).
		SetMultipartField("file", "document.pdf", "application/pdf", bytes.NewReader(data)).
		SetResult(&result).
		Post(p.url)
	if err != nil {
		return "", fmt.Errorf("call pdf parser: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("pdf parser returned %d: %s", resp.StatusCode(), bytes.TrimSpace(resp.Body()))
	}

	if result.Text == nil {
		return "", errors.New("pdf parser response has no text field")
	}

	return *result.Text, nil
}
