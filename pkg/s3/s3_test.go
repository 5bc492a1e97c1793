package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsObjectURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://shop-assets.s3.ap-southeast-1.amazonaws.com/products/p1.jpg", true},
		{"https://s3.amazonaws.com/shop-assets/p1.jpg", true},
		{"https://images.example.com/p1.jpg", false},
		{"/static/p1.jpg", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsObjectURL(tt.url), tt.url)
	}
}

func TestExtractKeyFromS3Url(t *testing.T) {
	assert.Equal(t, "products/p1.jpg", extractKeyFromS3Url("https://b.s3.amazonaws.com/products/p1.jpg"))
	assert.Equal(t, "plain-key", extractKeyFromS3Url("plain-key"))
}

func TestNewWithoutBucket(t *testing.T) {
	t.Setenv("AWS_BUCKET_NAME", "")

	client, err := New()
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
