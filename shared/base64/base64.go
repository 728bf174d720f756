package base64

import (
	"encoding/base64"
	"errors"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrInvalidDataURI = errors.New("invalid base64 data URI")

var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/webp": "webp",
}

func GetContentType(file string) string {
	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode splits a data URI ("data:image/png;base64,....") into its content type and payload.
func Decode(file string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(file, dataPrefix) {
		return "", nil, ErrInvalidDataURI
	}

	contentType = GetContentType(file)
	if contentType == "" {
		return "", nil, ErrInvalidDataURI
	}

	payload := file[strings.Index(file, base64Marker)+len(base64Marker):]

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Join(ErrInvalidDataURI, err)
	}

	return contentType, data, nil
}

// Extension returns the file extension for a supported image content type.
func Extension(contentType string) string {
	return extensions[contentType]
}
