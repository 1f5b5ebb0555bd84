package container

import (
	"fmt"
	"image"
	"iter"

	"github.com/mrmattuschka/yokai-image/bitpack"
	"github.com/mrmattuschka/yokai-image/errs"
)

// Key identifies an image inside a container. It is an integer in image
// containers and an ASCII character code in font containers.
type Key byte

// Image is a bitmap together with the size it is cropped to when stored.
//
// The same type is produced by decoding, where Width and Height always match
// the bitmap bounds.
type Image struct {
	Bitmap *bitpack.Bitmap
	Width  int
	Height int
}

// NewImage wraps b using its full bounds as the image size.
func NewImage(b *bitpack.Bitmap) Image {
	return Image{Bitmap: b, Width: b.Width(), Height: b.Height()}
}

// Size returns the (width, height) of the image.
func (img Image) Size() image.Point {
	return image.Pt(img.Width, img.Height)
}

// Validate checks the crop size is positive and fits inside the bitmap.
func (img Image) Validate() error {
	if img.Bitmap == nil {
		return fmt.Errorf("%w: missing bitmap", errs.ErrInvalidImageSize)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", errs.ErrInvalidImageSize, img.Width, img.Height)
	}
	if img.Width > img.Bitmap.Width() || img.Height > img.Bitmap.Height() {
		return fmt.Errorf("%w: %dx%d exceeds bitmap %dx%d", errs.ErrInvalidImageSize,
			img.Width, img.Height, img.Bitmap.Width(), img.Bitmap.Height())
	}

	return nil
}

// Cropped returns the bitmap cropped to the image size. The bitmap itself is
// returned when no cropping is needed.
func (img Image) Cropped() *bitpack.Bitmap {
	if img.Bitmap.Size() == img.Size() {
		return img.Bitmap
	}

	return img.Bitmap.Crop(img.Width, img.Height)
}

// Equal reports whether both images have the same size and the same pixels
// within that size.
func (img Image) Equal(o Image) bool {
	if img.Size() != o.Size() {
		return false
	}
	if img.Bitmap == nil || o.Bitmap == nil {
		return img.Bitmap == o.Bitmap
	}

	return img.Cropped().Equal(o.Cropped())
}

// Entry is one keyed image.
type Entry struct {
	Key   Key
	Image Image
}

// ImageSet is an ordered collection of images with unique keys.
type ImageSet struct {
	entries []Entry
	index   map[Key]int
}

// NewImageSet creates an empty image set.
func NewImageSet() *ImageSet {
	return &ImageSet{index: make(map[Key]int)}
}

// Add appends img under key. Keys must be unique.
func (s *ImageSet) Add(key Key, img Image) error {
	if _, ok := s.index[key]; ok {
		return fmt.Errorf("%w: %d", errs.ErrDuplicateKey, key)
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, Entry{Key: key, Image: img})

	return nil
}

// Get returns the image stored under key.
func (s *ImageSet) Get(key Key) (Image, bool) {
	i, ok := s.index[key]
	if !ok {
		return Image{}, false
	}

	return s.entries[i].Image, true
}

// Len returns the number of images.
func (s *ImageSet) Len() int {
	return len(s.entries)
}

// Keys returns the keys in insertion order.
func (s *ImageSet) Keys() []Key {
	keys := make([]Key, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.Key
	}

	return keys
}

// Entries returns the entries in insertion order. The slice must not be modified.
func (s *ImageSet) Entries() []Entry {
	return s.entries
}

// All iterates over the images in insertion order.
func (s *ImageSet) All() iter.Seq2[Key, Image] {
	return func(yield func(Key, Image) bool) {
		for _, e := range s.entries {
			if !yield(e.Key, e.Image) {
				return
			}
		}
	}
}
