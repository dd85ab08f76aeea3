package scanner

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"firstresponse/models"
	"firstresponse/services/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func stubAPI(t *testing.T, h http.HandlerFunc) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return upstream.NewClient(srv.URL, time.Second)
}

func unreachableAPI(t *testing.T) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	return upstream.NewClient(url, time.Second)
}

func TestScan_UploadsMultipartFile(t *testing.T) {
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		body, _ := io.ReadAll(f)
		assert.Equal(t, pngHeader, body)
		assert.Equal(t, "flyer.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		w.Write([]byte(`{"extracted_text":"FREE CURE","verdict":"Suspicious - unverified claim","reason":"No source"}`))
	})

	res, err := NewService(api, true, 1<<20).Scan(context.Background(), "tok",
		&Upload{Filename: "flyer.png", ContentType: "image/png", Body: bytes.NewReader(pngHeader)})
	require.NoError(t, err)
	assert.True(t, res.Suspicious())
	assert.Equal(t, "FREE CURE", res.ExtractedText)
	assert.False(t, res.Demo)
}

func TestScan_SniffsMissingContentType(t *testing.T) {
	var got string
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		got = hdr.Header.Get("Content-Type")
		w.Write([]byte(`{"extracted_text":"","verdict":"Legitimate","reason":""}`))
	})

	res, err := NewService(api, true, 0).Scan(context.Background(), "tok", &Upload{Body: bytes.NewReader(pngHeader)})
	require.NoError(t, err)
	assert.False(t, res.Suspicious())
	assert.Equal(t, "image/png", got)
}

func TestScan_Validation(t *testing.T) {
	svc := NewService(unreachableAPI(t), true, 8)

	_, err := svc.Scan(context.Background(), "tok", nil)
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = svc.Scan(context.Background(), "tok", &Upload{Body: strings.NewReader("")})
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = svc.Scan(context.Background(), "tok", &Upload{ContentType: "text/plain", Body: strings.NewReader("hi")})
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = svc.Scan(context.Background(), "tok", &Upload{ContentType: "image/png", Body: bytes.NewReader(pngHeader)})
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestScan_NonOK(t *testing.T) {
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := NewService(api, true, 0).Scan(context.Background(), "tok",
		&Upload{ContentType: "image/jpeg", Body: bytes.NewReader(pngHeader)})
	require.ErrorIs(t, err, ErrScanFailed)
}

func TestScan_Unreachable(t *testing.T) {
	up := func() *Upload { return &Upload{ContentType: "image/gif", Body: bytes.NewReader(pngHeader)} }

	res, err := NewService(unreachableAPI(t), true, 0).Scan(context.Background(), "tok", up())
	require.NoError(t, err)
	assert.True(t, res.Demo)

	_, err = NewService(unreachableAPI(t), false, 0).Scan(context.Background(), "tok", up())
	require.ErrorIs(t, err, upstream.ErrUnavailable)
	assert.Equal(t, "An error occurred while connecting to the backend.", err.Error())
}

func TestSuspicious(t *testing.T) {
	assert.True(t, models.ScanResult{Verdict: "Suspicious"}.Suspicious())
	assert.False(t, models.ScanResult{Verdict: "suspicious"}.Suspicious())
	assert.False(t, models.ScanResult{Verdict: "Legitimate"}.Suspicious())
}
