package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		digest uint64
	}{
		{"empty", "", 0xef46db3751d8e999},
		{"short", "test", 0x4fdcca5ddb678139},
		{"long", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.digest, Digest([]byte(tt.data)))
			assert.Equal(t, tt.digest, DigestString(tt.data))
		})
	}
}

func TestDigest_DiffersOnSingleBit(t *testing.T) {
	a := []byte{0x80, 0x00, 0x40}
	b := []byte{0x80, 0x00, 0x41}

	assert.NotEqual(t, Digest(a), Digest(b))
}
