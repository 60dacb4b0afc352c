package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"imgconv/api/model"
	"imgconv/config"
	img "imgconv/converter/image"
	"imgconv/service"
	"imgconv/shared/apperr"
	"imgconv/shared/metrics"
	"imgconv/validation"
)

type fakeEncoder struct {
	calls   int
	lastOpt img.Options
	err     error
}

func (f *fakeEncoder) Encode(_ context.Context, _ []byte, opts img.Options) (io.Reader, int64, error) {
	f.calls++
	f.lastOpt = opts
	if f.err != nil {
		return nil, 0, f.err
	}
	return bytes.NewBufferString("encoded-bytes"), int64(len("encoded-bytes")), nil
}

type fakeStrategy struct {
	enc *fakeEncoder
}

func (s fakeStrategy) Apply(img.Type) img.Encoder {
	return s.enc
}

func newTestService(enc *fakeEncoder) *service.ConvertService {
	cfg := &config.Config{
		MaxUploadSizeBytes: 10 * 1024 * 1024,
		MaxFilenameLength:  255,
		DefaultQuality:     90,
		MaxDimension:       10000,
	}
	return service.NewConvertService(fakeStrategy{enc: enc}, validation.New(cfg), cfg, metrics.New(), zap.NewNop())
}

func pngRequest() model.ConversionRequest {
	return model.ConversionRequest{
		File: &model.UploadedFile{
			Data:        []byte{0x89, 0x50, 0x4e, 0x47},
			Size:        2 * 1024 * 1024,
			ContentType: "image/png",
			Filename:    "photo.png",
		},
		TargetFormat: "webp",
		Quality:      "90",
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, code, ae.Code)
}

func TestProcessSuccess(t *testing.T) {
	enc := &fakeEncoder{}
	svc := newTestService(enc)

	result, err := svc.Process(context.Background(), pngRequest())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "photo.webp", result.FileName)
	assert.Equal(t, "image/webp", result.MimeType)
	assert.Equal(t, int64(len("encoded-bytes")), result.ContentLength)

	body, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	assert.Equal(t, "encoded-bytes", string(body))

	assert.Equal(t, 1, enc.calls)
	assert.Equal(t, 90, enc.lastOpt.Quality)
}

func TestProcessDefaultsQuality(t *testing.T) {
	enc := &fakeEncoder{}
	svc := newTestService(enc)

	req := pngRequest()
	req.Quality = ""

	_, err := svc.Process(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 90, enc.lastOpt.Quality)
}

func TestProcessNormalizesResizeParams(t *testing.T) {
	enc := &fakeEncoder{}
	svc := newTestService(enc)

	req := pngRequest()
	req.TargetFormat = "jpeg"
	req.Width = "5000"
	req.MaintainAspectRatio = true

	result, err := svc.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "photo.jpg", result.FileName)
	assert.Equal(t, "image/jpeg", result.MimeType)
	assert.Equal(t, 5000, enc.lastOpt.Width)
	assert.Zero(t, enc.lastOpt.Height)
	assert.True(t, enc.lastOpt.KeepAspect)
}

func TestProcessAcceptsJpgAlias(t *testing.T) {
	enc := &fakeEncoder{}
	svc := newTestService(enc)

	req := pngRequest()
	req.TargetFormat = "jpg"

	result, err := svc.Process(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", result.MimeType)
	assert.Equal(t, "photo.jpg", result.FileName)
}

func TestProcessValidationShortCircuits(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *model.ConversionRequest)
		wantCode string
	}{
		{
			name:     "oversized file",
			mutate:   func(req *model.ConversionRequest) { req.File.Size = 12 * 1024 * 1024 },
			wantCode: apperr.CodeFileTooLarge,
		},
		{
			name:     "missing file",
			mutate:   func(req *model.ConversionRequest) { req.File = nil },
			wantCode: apperr.CodeNoFileProvided,
		},
		{
			name:     "unknown target format",
			mutate:   func(req *model.ConversionRequest) { req.TargetFormat = "bogus" },
			wantCode: apperr.CodeUnsupportedFormat,
		},
		{
			name:     "quality out of range",
			mutate:   func(req *model.ConversionRequest) { req.Quality = "150" },
			wantCode: apperr.CodeQualityOutOfRange,
		},
		{
			name:     "dimension above ceiling",
			mutate:   func(req *model.ConversionRequest) { req.Width = "10001" },
			wantCode: apperr.CodeInvalidDimensions,
		},
		{
			name: "extension does not match declared type",
			mutate: func(req *model.ConversionRequest) {
				req.File.ContentType = "image/jpeg"
			},
			wantCode: apperr.CodeExtensionMimeMismatch,
		},
		{
			name: "filename requiring sanitization",
			mutate: func(req *model.ConversionRequest) {
				req.File.Filename = "../../etc/passwd.png"
			},
			wantCode: apperr.CodeInvalidFilenameChars,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := &fakeEncoder{}
			svc := newTestService(enc)

			req := pngRequest()
			tt.mutate(&req)

			_, err := svc.Process(context.Background(), req)
			requireCode(t, err, tt.wantCode)
			assert.Zero(t, enc.calls, "engine must not be reached after a validation failure")
		})
	}
}

func TestProcessFileTooLargeMentionsLimit(t *testing.T) {
	enc := &fakeEncoder{}
	svc := newTestService(enc)

	req := pngRequest()
	req.File.Size = 12 * 1024 * 1024

	_, err := svc.Process(context.Background(), req)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Message, "10MB")
}

func TestProcessEngineFailureIsGeneric(t *testing.T) {
	enc := &fakeEncoder{err: errors.New("vips: premature end of input stream")}
	svc := newTestService(enc)

	_, err := svc.Process(context.Background(), pngRequest())

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindConversion, ae.Kind)
	assert.Equal(t, apperr.CodeConversionFailed, ae.Code)
	assert.NotContains(t, ae.Message, "vips", "internal engine detail must not leak to the caller")
	assert.ErrorIs(t, err, enc.err)
}

func TestOutputFilenameWithoutSourceExtension(t *testing.T) {
	enc := &fakeEncoder{}
	svc := newTestService(enc)

	req := pngRequest()
	req.File.Filename = "photo.tar.png"

	result, err := svc.Process(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "photo.tar.webp", result.FileName)
}
