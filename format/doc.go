// Package format defines the enumerations stored in a YI container: the
// container kind, the pixel encodings shared with MicroPython's framebuf and
// the glyph key text encoding, together with the version stamp.
package format
