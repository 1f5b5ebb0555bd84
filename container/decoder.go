package container

import (
	"io"

	"github.com/mrmattuschka/yokai-image/section"
)

// Decode reads a whole container from r.
//
// Images are returned in LUT order. Any error aborts the decode; no partial
// image set is returned.
func Decode(r io.ReadSeeker) (section.Metadata, *ImageSet, error) {
	rd, err := NewReader(r)
	if err != nil {
		return section.Metadata{}, nil, err
	}

	set := NewImageSet()
	for _, key := range rd.Keys() {
		img, err := rd.Image(key)
		if err != nil {
			return section.Metadata{}, nil, err
		}
		if err := set.Add(key, img); err != nil {
			return section.Metadata{}, nil, err
		}
	}

	return rd.Metadata(), set, nil
}
