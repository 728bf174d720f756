package base64_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taghazout/shared/base64"
)

const pixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png", input: pixelPNG, expected: "image/png"},
		{name: "text", input: "data:text/plain;base64,SGVsbG8=", expected: "text/plain"},
		{name: "empty string", input: "", expected: ""},
		{name: "no base64 marker", input: "data:image/png,abc", expected: ""},
		{name: "only prefix with marker", input: "data:;base64,", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	contentType, data, err := base64.Decode(pixelPNG)

	assert.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.NotEmpty(t, data)
	assert.Equal(t, "png", base64.Extension(contentType))
}

func TestDecode_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"image/png;base64,AAAA",
		"data:image/png;base64,@@@not-base64@@@",
	}

	for _, input := range inputs {
		_, _, err := base64.Decode(input)
		assert.ErrorIs(t, err, base64.ErrInvalidDataURI)
	}
}
