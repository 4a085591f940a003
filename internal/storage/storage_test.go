package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("/product-images/", "Mouse.JPG")
	assert.True(t, strings.HasPrefix(key, "product-images/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)

	assert.NotEqual(t, ObjectKey("p", "a.png"), ObjectKey("p", "a.png"))

	bare := ObjectKey("", "noext")
	assert.NotContains(t, bare, "/")
	assert.NotContains(t, bare, ".")
}

func TestObjectURL(t *testing.T) {
	withBase := &S3Service{opts: S3Options{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"}}
	assert.Equal(t, "https://cdn.example.com/k.png", withBase.objectURL("k.png", "https://b.s3.amazonaws.com/k.png"))

	plain := &S3Service{opts: S3Options{Bucket: "b"}}
	assert.Equal(t, "https://b.s3.amazonaws.com/k.png", plain.objectURL("k.png", "https://b.s3.amazonaws.com/k.png"))
	assert.Equal(t, "s3://b/k.png", plain.objectURL("k.png", ""))
}
