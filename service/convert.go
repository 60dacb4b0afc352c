package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"imgconv/api/model"
	"imgconv/config"
	img "imgconv/converter/image"
	"imgconv/shared/apperr"
	"imgconv/shared/log"
	"imgconv/shared/metrics"
	"imgconv/validation"
)

type encoderStrategy interface {
	Apply(t img.Type) img.Encoder
}

// ConvertService orchestrates one conversion: validate, normalize options,
// call the image engine once, shape the result. It holds no request-spanning
// state, concurrent invocations are independent.
type ConvertService struct {
	config   *config.Config
	validate *validation.Validator
	strategy encoderStrategy
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewConvertService(strategy encoderStrategy, v *validation.Validator, c *config.Config, m *metrics.Metrics, logger *zap.Logger) *ConvertService {
	return &ConvertService{config: c, validate: v, strategy: strategy, metrics: m, logger: logger}
}

func (s *ConvertService) Process(ctx context.Context, params model.ConversionRequest) (*model.ConversionResult, error) {
	logger := log.LoggerWithTrace(ctx, s.logger)

	opts, target, err := s.buildOptions(params)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			s.metrics.ValidationRejected.WithLabelValues(ae.Code).Inc()
		}
		return nil, err
	}

	started := time.Now()
	body, size, err := s.strategy.Apply(target).Encode(ctx, params.File.Data, opts)
	s.metrics.ConversionDuration.WithLabelValues(target.String()).Observe(time.Since(started).Seconds())
	if err != nil {
		s.metrics.ConversionsTotal.WithLabelValues(target.String(), "error").Inc()
		logger.Error("Image engine failed",
			zap.String("target", target.String()),
			zap.String("filename", params.File.Filename),
			zap.Error(err))
		// The underlying cause stays in the server log.
		return nil, apperr.Conversion("The image could not be converted", err)
	}
	s.metrics.ConversionsTotal.WithLabelValues(target.String(), "ok").Inc()

	return &model.ConversionResult{
		Success:       true,
		FileName:      outputFileName(params.File.Filename, target),
		MimeType:      target.MIME(),
		ContentLength: size,
		Body:          body,
	}, nil
}

// buildOptions runs the full validation gate and produces the normalized
// option set. Any failure here short-circuits before the engine is touched.
func (s *ConvertService) buildOptions(params model.ConversionRequest) (img.Options, img.Type, error) {
	if err := s.validate.File(params.File); err != nil {
		return img.Options{}, img.Type{}, err
	}

	quality, present, err := s.validate.Quality(params.Quality)
	if err != nil {
		return img.Options{}, img.Type{}, err
	}
	if !present {
		quality = s.config.DefaultQuality
	}

	width, err := s.validate.Dimension(params.Width)
	if err != nil {
		return img.Options{}, img.Type{}, err
	}
	height, err := s.validate.Dimension(params.Height)
	if err != nil {
		return img.Options{}, img.Type{}, err
	}

	if err := s.validate.ExtensionMatchesType(params.File.Filename, params.File.ContentType); err != nil {
		return img.Options{}, img.Type{}, err
	}

	target, err := img.MakeFromString(strings.ToLower(strings.TrimSpace(params.TargetFormat)))
	if err != nil {
		return img.Options{}, img.Type{}, apperr.Validation(apperr.CodeUnsupportedFormat,
			"Unsupported target format: "+params.TargetFormat)
	}

	return img.Options{
		Quality:    quality,
		Width:      width,
		Height:     height,
		KeepAspect: params.MaintainAspectRatio,
	}, target, nil
}

// outputFileName strips the source extension and appends the canonical one
// for the target format.
func outputFileName(source string, target img.Type) string {
	base := source
	if idx := strings.LastIndex(source, "."); idx > 0 {
		base = source[:idx]
	}
	if base == "" {
		base = "converted"
	}
	return base + "." + target.Ext()
}
