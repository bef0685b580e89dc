// Nbtdump inspects and converts NBT documents.
//
// It reads a document from a file (or stdin), transparently decompressing
// gzip, zlib, zstd and LZ4 containers, and either dumps the tag tree in a
// chosen format or re-encodes it to a new file.
//
// Dumping:
//
//	nbtdump level.dat                     # human-readable tree
//	nbtdump --format json level.dat       # JSON projection
//	nbtdump --format yaml level.dat       # YAML projection
//	nbtdump --format cbor level.dat > x   # CBOR projection (binary)
//
// Converting:
//
//	nbtdump --out level.zstd --compress zstd level.dat
//	nbtdump --varint --out level.raw --compress none level.varint.dat
//
// The --little-endian and --varint flags describe the input document's wire
// encoding (neither is self-describing); conversions re-encode with the
// same wire settings. The decoder runs with a 64 MiB allocation budget by
// default; raise it with --limit, or pass --limit -1 to remove it.
package main
