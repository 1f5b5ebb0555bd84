// Package container encodes and decodes complete YI containers.
//
// A container bundles up to 255 monochrome images, each stored under a
// one-byte key, in a single binary blob laid out for microcontrollers: a
// metadata block, a lookup table from key to offset, and the packed images.
//
// Encoding:
//
//	enc, err := container.NewEncoder(format.KindFont, container.WithPixelEncoding(format.VLSB))
//	if err != nil { ... }
//	_ = enc.Add('A', container.NewImage(glyphA))
//	_ = enc.Add('B', container.NewImage(glyphB))
//	data, err := enc.Finish()
//
// Random access decoding:
//
//	rd, err := container.NewReader(bytes.NewReader(data))
//	img, err := rd.Image('A')
//
// Decode reads every image at once and returns them as an ImageSet.
package container
