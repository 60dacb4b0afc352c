package model

import "io"

// UploadedFile lives for exactly one request; nothing here is persisted.
type UploadedFile struct {
	Data        []byte
	Size        int64
	ContentType string
	Filename    string
}

type ConversionRequest struct {
	File *UploadedFile `form:"-"`

	TargetFormat        string `form:"targetFormat"`
	Quality             string `form:"quality"`
	Width               string `form:"width"`
	Height              string `form:"height"`
	MaintainAspectRatio bool   `form:"maintainAspectRatio"`
}

type ConversionResult struct {
	Success       bool
	FileName      string
	MimeType      string
	ContentLength int64

	Body io.Reader
}

// ErrorResponse is the failure arm of the response envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FormatInfo describes one supported target encoding for the upload UI.
type FormatInfo struct {
	Format    string `json:"format"`
	Extension string `json:"extension"`
	MimeType  string `json:"mimeType"`
}
