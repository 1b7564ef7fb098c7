package common

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dslipak/pdf"
	"go.uber.org/zap"
)

// ExtractRowsFromPDFReader decodes a PDF into text rows, one per visual line.
// Malformed documents that make the decoder panic are reported as errors.
func ExtractRowsFromPDFReader(reader io.Reader, logger *zap.Logger) (rows []string, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	defer func() {
		if rec := recover(); rec != nil {
			rows, err = nil, fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	// Ensure we have an io.ReaderAt and know the size
	var rAt io.ReaderAt
	var size int64

	switch v := reader.(type) {
	case io.ReaderAt:
		rAt = v
		seeker, ok := reader.(io.Seeker)
		if !ok {
			return nil, errors.New("reader is io.ReaderAt but not io.Seeker, cannot determine size")
		}
		cur, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}
		end, err := seeker.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, err
		}
		if _, err := seeker.Seek(cur, io.SeekStart); err != nil {
			return nil, err
		}
		size = end
	default:
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(reader); err != nil {
			return nil, err
		}
		b := buf.Bytes()
		rAt = bytes.NewReader(b)
		size = int64(len(b))
	}

	r, err := pdf.NewReader(rAt, size)
	if err != nil {
		return nil, err
	}

	numPages := r.NumPage()
	rows = make([]string, 0, numPages*100)

	for no := 1; no <= numPages; no++ {
		page := r.Page(no)
		pageRows, err := page.GetTextByRow()
		if err != nil {
			logger.Warn("skipping unreadable page", zap.Int("page", no), zap.Error(err))
			continue
		}

		for _, row := range pageRows {
			var builder strings.Builder
			for i, text := range row.Content {
				builder.WriteString(text.S)
				if i < len(row.Content)-1 {
					builder.WriteByte(' ')
				}
			}

			if builder.Len() > 0 {
				rows = append(rows, builder.String())
			}
		}
	}

	return rows, nil
}

// ExtractTextFromPDFReader decodes a PDF into newline-delimited plain text.
func ExtractTextFromPDFReader(reader io.Reader, logger *zap.Logger) (string, error) {
	rows, err := ExtractRowsFromPDFReader(reader, logger)
	if err != nil {
		return "", err
	}
	return strings.Join(rows, "\n"), nil
}
