package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strconv"
	"time"
)

// Request describes one backend call. Body is sent as JSON; Multipart, when set, takes
// precedence over Body.
type Request struct {
	Method    string
	Path      string // Relative to the base URL, or an absolute URL
	Query     url.Values
	Body      any
	Multipart *Multipart
	Timeout   time.Duration // Zero means no deadline beyond ctx
}

// Blob is a binary response such as an exported spreadsheet or a PDF.
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string // From Content-Disposition, "" when the server sent none
}

// File is one file part of a multipart upload.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// Multipart is a form-data body.
type Multipart struct {
	Fields map[string]string
	Files  []File
}

func (m *Multipart) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for name, value := range m.Fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}
	for _, f := range m.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
			"name":     f.Field,
			"filename": f.Filename,
		}))
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("copy part %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// Params builds a query string, leaving out empty optional values.
type Params struct {
	values url.Values
}

func NewParams() *Params {
	return &Params{values: url.Values{}}
}

// Set adds key unless value is "".
func (p *Params) Set(key, value string) *Params {
	if value != "" {
		p.values.Set(key, value)
	}
	return p
}

// SetInt adds key unless value is 0.
func (p *Params) SetInt(key string, value int) *Params {
	if value != 0 {
		p.values.Set(key, strconv.Itoa(value))
	}
	return p
}

// SetBool adds key when value is non-nil.
func (p *Params) SetBool(key string, value *bool) *Params {
	if value != nil {
		p.values.Set(key, strconv.FormatBool(*value))
	}
	return p
}

// Values returns the collected parameters, nil when there are none.
func (p *Params) Values() url.Values {
	if len(p.values) == 0 {
		return nil
	}
	return p.values
}

// FilenameFromDisposition returns the filename parameter of a Content-Disposition header.
func FilenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
