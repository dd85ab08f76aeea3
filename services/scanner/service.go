// Package scanner uploads flyer images for misinformation analysis.
package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"firstresponse/models"
	"firstresponse/services/upstream"
	"firstresponse/utils"

	"go.uber.org/zap"
)

var (
	ErrNoImage      = errors.New("Please select an image first")
	ErrInvalidImage = errors.New("Please select a valid image file (PNG, JPG, JPEG, GIF)")
	ErrTooLarge     = errors.New("Image is too large.")
	ErrScanFailed   = errors.New("Failed to analyze image. Please try again.")
)

// Upload is a flyer picked by the user. ContentType may be empty, in which
// case it is sniffed from the first bytes.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type API interface {
	ScanFlyer(ctx context.Context, token, filename, contentType string, image io.Reader) (*upstream.Response, error)
}

type ScannerService interface {
	Scan(ctx context.Context, token string, up *Upload) (*models.ScanResult, error)
}

type DefaultScannerService struct {
	API          API
	DemoFallback bool
	MaxBytes     int64
}

func NewService(api API, demoFallback bool, maxBytes int64) *DefaultScannerService {
	return &DefaultScannerService{API: api, DemoFallback: demoFallback, MaxBytes: maxBytes}
}

// IsImage reports whether a MIME type is acceptable for scanning.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

func (s *DefaultScannerService) Scan(ctx context.Context, token string, up *Upload) (*models.ScanResult, error) {
	logger := utils.GetLogger()

	if up == nil || up.Body == nil {
		return nil, ErrNoImage
	}
	data, err := s.read(up.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	contentType := up.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !IsImage(contentType) {
		return nil, ErrInvalidImage
	}
	filename := up.Filename
	if filename == "" {
		filename = "flyer"
	}

	resp, err := s.API.ScanFlyer(ctx, token, filename, contentType, bytes.NewReader(data))
	if err != nil {
		if !upstream.IsTransport(err) {
			return nil, err
		}
		if !s.DemoFallback {
			return nil, upstream.ErrUnavailable
		}
		logger.Info("Scanner backend unreachable, serving demo scan", zap.Error(err))
		return demoScan(), nil
	}
	if err := resp.Check(upstream.PathScan); err != nil {
		logger.Warn("Flyer scan rejected", zap.Error(err))
		return nil, ErrScanFailed
	}

	var result models.ScanResult
	if err := resp.Decode(&result); err != nil {
		logger.Error("Undecodable scan response", zap.Error(err))
		return nil, ErrScanFailed
	}
	logger.Info("Flyer scanned",
		zap.String("verdict", result.Verdict),
		zap.Bool("suspicious", result.Suspicious()),
		zap.Int("bytes", len(data)),
	)
	return &result, nil
}

// read buffers the upload, failing once it exceeds MaxBytes.
func (s *DefaultScannerService) read(r io.Reader) ([]byte, error) {
	if s.MaxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, s.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > s.MaxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

func demoScan() *models.ScanResult {
	return &models.ScanResult{
		ExtractedText: "EMERGENCY NOTICE: Relief supplies will be distributed at the district office from 9 AM. Bring an ID.",
		Verdict:       "Likely Legitimate",
		Reason:        "Sample analysis: the notice names an official distribution point and makes no unverifiable claims.",
		Demo:          true,
	}
}
