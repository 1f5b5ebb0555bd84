// Package section implements the three blocks of a YI container: metadata,
// lookup table (LUT) and image data.
//
// # Container Structure
//
// A container is exactly three blocks laid out contiguously in this order:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Metadata block                                          │
//	│  - tag 0x00, major, minor, length (1 byte)              │
//	│  - (section tag, payload) pairs, any order              │
//	├─────────────────────────────────────────────────────────┤
//	│ LUT block                                               │
//	│  - tag 0x01, length (int32)                             │
//	│  - (key byte, offset) pairs, offset is PointerLength    │
//	│    signed bytes                                         │
//	├─────────────────────────────────────────────────────────┤
//	│ Image data block                                        │
//	│  - tag 0x02 (once for the whole block)                  │
//	│  - per image: length, width, height (int32 each),       │
//	│    packed pixels                                        │
//	└─────────────────────────────────────────────────────────┘
//
// All multi-byte integers are little-endian and signed. Block and section
// lengths are self-inclusive. The metadata block length is a single byte while
// the LUT length is four bytes wide, because the LUT can exceed 255 bytes.
//
// # Metadata Sections
//
//	Tag  | Field          | Payload
//	-----|----------------|---------------------------------------------
//	0x00 | pointer length | 1 byte, width of each LUT offset
//	0x01 | kind           | 1 byte, 0x00=images 0x01=font
//	0x02 | image count    | 1 byte
//	0x03 | pixel encoding | 1 byte, 0x00=VLSB 0x03=HLSB 0x04=HMSB
//	0x04 | text encoding  | 1 byte, 0x00=ascii (font containers only)
//	0x05 | max size       | 8 bytes, int32 width then int32 height
//
// An unknown section tag makes the whole container unreadable.
//
// # Offsets
//
// LUT offsets are relative to the first byte of the image data block, so the
// first image is always at offset 1, right after the block tag, and each next
// offset adds the previous section length. A reader holding the metadata
// length and the LUT length can seek straight to any image:
//
//	dataStart := metadata.Length + lutLength
//	ReadImage(r, dataStart, pointer)
//
// Keys are a single byte on disk: an integer in image containers and a
// character code in font containers.
package section
