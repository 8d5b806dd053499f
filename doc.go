/*
Package xnb writes XNA Game Studio 4.0 XNB containers holding a single
Texture2D, and reads them back.

An XNB file starts with a 6 byte header ("XNB", platform, version, flags)
and a size field, followed by the object block: the type reader table, the
shared resource count and the Texture2D object (surface format, size, mip
count, pixel data). Pixels are stored as 32-bit BGRA color, optionally with
premultiplied alpha.

The object block may be wrapped in a compressed frame. The package does not
implement LZX; compression goes through an injected Codec. LZ4Codec produces
the LZ4 variant that MonoGame loads.
*/
package xnb
