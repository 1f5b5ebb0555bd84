package main

import (
	"fmt"
	"strconv"

	"github.com/mrmattuschka/yokai-image/container"
	"github.com/mrmattuschka/yokai-image/errs"
	"github.com/mrmattuschka/yokai-image/format"
)

// parseKey resolves a key as written on the command line or in a manifest.
// Font keys are single characters; longer values and all image keys are
// decimal integers.
func parseKey(kind format.Kind, s string) (container.Key, error) {
	if kind == format.KindFont && len(s) == 1 {
		return container.Key(s[0]), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidKey, s)
	}

	return container.Key(n), nil
}

// keyLabel renders key for humans: printable font keys as quoted characters.
func keyLabel(kind format.Kind, key container.Key) string {
	if kind == format.KindFont && key >= 0x20 && key < 0x7F {
		return strconv.QuoteRune(rune(key))
	}

	return strconv.Itoa(int(key))
}

// formatKind names the container kind in headers.
func formatKind(kind format.Kind) string {
	if kind == format.KindFont {
		return "font"
	}

	return "image set"
}
