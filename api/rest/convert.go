package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"imgconv/api/model"
	"imgconv/config"
	img "imgconv/converter/image"
	"imgconv/service"
	"imgconv/shared/apperr"
	"imgconv/shared/log"
)

type ConvertController struct {
	cfg     *config.Config
	service *service.ConvertService
	logger  *zap.Logger
}

func NewConvertController(app *fiber.App, cfg *config.Config, service *service.ConvertService, logger *zap.Logger) *ConvertController {
	c := &ConvertController{cfg: cfg, service: service, logger: logger}

	app.Post("/convert", c.Convert)
	app.Get("/formats", c.Formats)
	app.Get("/health", c.Health)

	return c
}

// Convert image
//
//	@Summary		Convert an uploaded image to the requested format
//	@Description	Accepts a multipart upload plus target format, optional quality and size, and returns the converted image as an attachment.
//	@Tags			convert
//	@Accept			multipart/form-data
//	@Produce		image/jpeg,image/png,image/webp,image/avif,image/tiff,image/gif
//	@Param			file				formData	file	true	"Source image"
//	@Param			targetFormat		formData	string	true	"Target format"
//	@Param			quality				formData	int		false	"Quality 1-100"
//	@Param			width				formData	int		false	"Target width"
//	@Param			height				formData	int		false	"Target height"
//	@Param			maintainAspectRatio	formData	bool	false	"Fit inside the target box"
//	@Success		200	{file}		file				"Returns the converted image"
//	@Failure		400	{object}	model.ErrorResponse	"Validation failure"
//	@Router			/convert [post]
func (cc *ConvertController) Convert(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), cc.cfg.ConversionTimeout())
	defer cancel()
	logger := log.LoggerWithTrace(ctx, cc.logger)

	params := &model.ConversionRequest{}
	if err := c.BodyParser(params); err != nil {
		logger.Error("Error parsing form", zap.Error(err))
		return c.Status(http.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Error:   "INVALID_REQUEST",
			Message: "Invalid request format",
		})
	}
	file, err := cc.uploadedFile(c)
	if err != nil {
		logger.Error("Error reading uploaded file", zap.Error(err))
		return cc.respondError(c, apperr.Validation(apperr.CodeFileReadFailed,
			"The uploaded file could not be read"))
	}
	params.File = file

	result, err := cc.service.Process(ctx, *params)
	if err != nil {
		logger.Warn("Conversion rejected", zap.Error(err))
		return cc.respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, result.MimeType)
	c.Set(fiber.HeaderContentLength, strconv.FormatInt(result.ContentLength, 10))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.FileName))

	return c.SendStream(result.Body)
}

// Supported formats
//
//	@Summary	List supported target formats
//	@Tags		convert
//	@Produce	json
//	@Success	200	{array}	model.FormatInfo
//	@Router		/formats [get]
func (cc *ConvertController) Formats(c *fiber.Ctx) error {
	formats := make([]model.FormatInfo, 0, len(img.All))
	for _, t := range img.All {
		formats = append(formats, model.FormatInfo{
			Format:    t.String(),
			Extension: t.Ext(),
			MimeType:  t.MIME(),
		})
	}

	return c.JSON(formats)
}

func (cc *ConvertController) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// uploadedFile pulls the multipart file into memory for the duration of the
// request. A missing part becomes a nil file, which the validator reports as
// NO_FILE_PROVIDED; a part that is present but unreadable is an error.
func (cc *ConvertController) uploadedFile(c *fiber.Ctx) (*model.UploadedFile, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil
	}

	return readUpload(header)
}

func readUpload(header *multipart.FileHeader) (*model.UploadedFile, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &model.UploadedFile{
		Data:        data,
		Size:        header.Size,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Filename:    header.Filename,
	}, nil
}

func (cc *ConvertController) respondError(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		return c.Status(http.StatusInternalServerError).JSON(model.ErrorResponse{
			Success: false,
			Error:   "INTERNAL_ERROR",
			Message: "Internal server error",
		})
	}

	status := http.StatusBadRequest
	switch {
	case ae.Kind == apperr.KindConversion:
		status = http.StatusUnprocessableEntity
	case ae.Code == apperr.CodeFileTooLarge:
		status = http.StatusRequestEntityTooLarge
	case ae.Code == apperr.CodeUnsupportedMediaType:
		status = http.StatusUnsupportedMediaType
	}

	return c.Status(status).JSON(model.ErrorResponse{
		Success: false,
		Error:   ae.Code,
		Message: ae.Message,
	})
}
