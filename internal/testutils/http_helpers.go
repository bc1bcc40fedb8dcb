package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UploadFile describes the multipart "file" part of an upload request.
// An empty ContentType omits the part's Content-Type header.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// PDFUpload returns an UploadFile holding size bytes of fake PDF content.
func PDFUpload(name string, size int) *UploadFile {
	data := bytes.Repeat([]byte{'x'}, size)
	copy(data, "%PDF-1.4\n")
	return &UploadFile{Name: name, ContentType: "application/pdf", Data: data}
}

// NewMultipartBody encodes file and fields as multipart/form-data. A nil file
// omits the "file" part. It returns the body and its Content-Type value.
func NewMultipartBody(t *testing.T, file *UploadFile, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}

	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, file.Name))
		if file.ContentType != "" {
			header.Set("Content-Type", file.ContentType)
		}
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.Data)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

// NewUploadRequest builds a POST multipart request for target suitable for
// calling a handler directly.
func NewUploadRequest(t *testing.T, target string, file *UploadFile, fields map[string]string) *http.Request {
	t.Helper()

	body, contentType := NewMultipartBody(t, file, fields)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	return req
}

// CreateTestServer creates a httptest server with the given handler.
// Automatically registers cleanup via t.Cleanup() so callers don't need to manually close the server.
func CreateTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
	})
	return server
}

// CleanupResponseBody registers a cleanup function to close the response body
// to prevent resource leaks. Should be used in tests when receiving an HTTP response.
func CleanupResponseBody(t *testing.T, resp *http.Response) {
	t.Helper()
	if resp != nil && resp.Body != nil {
		t.Cleanup(func() {
			if err := resp.Body.Close(); err != nil {
				t.Logf("Warning: failed to close response body: %v", err)
			}
		})
	}
}

// DecodeErrorEnvelope parses a JSON error envelope.
func DecodeErrorEnvelope(t *testing.T, body []byte) map[string]string {
	t.Helper()

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(body, &envelope), "Failed to unmarshal error envelope: %s", string(body))
	return envelope
}

// AssertErrorResponse checks that a response carries the expected status and
// an envelope whose "error" field equals expectedError. The envelope is returned
// for further assertions.
func AssertErrorResponse(
	t *testing.T,
	resp *http.Response,
	expectedStatus int,
	expectedError string,
) map[string]string {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode,
		"Expected status code %d but got %d", expectedStatus, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	envelope := DecodeErrorEnvelope(t, body)
	assert.Equal(t, expectedError, envelope["error"])
	assert.NotEmpty(t, envelope["message"], "every error envelope carries a message")
	return envelope
}
