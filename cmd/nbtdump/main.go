package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/arloliu/nbt"
	"github.com/arloliu/nbt/compress"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/interop"
	"github.com/arloliu/nbt/tag"
	"github.com/arloliu/nbt/wire"
)

const defaultBudget = 64 << 20

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		formatName   string
		littleEndian bool
		varint       bool
		limit        int
		outPath      string
		compressName string
	)

	flagSet := pflag.NewFlagSet("nbtdump", pflag.ContinueOnError)
	flagSet.StringVar(&formatName, "format", "tree", "dump format: tree, json, yaml or cbor")
	flagSet.BoolVar(&littleEndian, "little-endian", false, "input uses little-endian multi-byte fields")
	flagSet.BoolVar(&varint, "varint", false, "input uses varint lengths and integers")
	flagSet.IntVar(&limit, "limit", defaultBudget, "decoder allocation budget in bytes (-1 for unlimited)")
	flagSet.StringVar(&outPath, "out", "", "re-encode the document to this file instead of dumping")
	flagSet.StringVar(&compressName, "compress", "none", "compression for --out: none, gzip, zlib, zstd or lz4")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	args := flagSet.Args()
	if len(args) > 1 {
		return fmt.Errorf("unexpected argument: %s", args[1])
	}

	opts := wireOptions(littleEndian, varint)
	decodeOpts := opts
	if limit >= 0 {
		decodeOpts = append(decodeOpts, wire.WithAllocationLimit(limit))
	}

	root, err := readDocument(args, decodeOpts)
	if err != nil {
		return err
	}

	if outPath != "" {
		compression, ok := format.ParseCompressionType(compressName)
		if !ok {
			return fmt.Errorf("unknown compression %q (want none, gzip, zlib, zstd or lz4)", compressName)
		}
		return writeDocument(outPath, root, compression, opts)
	}

	return dump(os.Stdout, root, formatName)
}

// readDocument loads the input document from the positional file argument,
// or from stdin when none (or "-") is given. Compression is auto-detected.
func readDocument(args []string, opts []wire.Option) (tag.Value, error) {
	if len(args) == 0 || args[0] == "-" {
		return nbt.Read(os.Stdin, opts...)
	}

	return nbt.ReadFile(args[0], opts...)
}

// writeDocument re-encodes root with the input's wire settings, compresses
// it, and writes the result to path. The sizes are reported to stderr.
func writeDocument(path string, root tag.Value, compression format.CompressionType, opts []wire.Option) error {
	var data []byte
	var err error

	switch v := root.(type) {
	case *tag.Compound:
		data, err = nbt.Encode(v, opts...)
	case *tag.List:
		data, err = nbt.EncodeList(v, opts...)
	default:
		err = fmt.Errorf("cannot re-encode a %s root", root.ID())
	}
	if err != nil {
		return err
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}
	compressed, err := codec.Compress(data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	stats := compress.CompressionStats{
		Algorithm:      compression,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(compressed)),
	}
	fmt.Fprintf(os.Stderr, "wrote %s: %d -> %d bytes (%s, %.1f%% saved)\n",
		path, stats.OriginalSize, stats.CompressedSize, stats.Algorithm, stats.SpaceSavings())

	return nil
}

// dump renders root to w in the requested format.
func dump(w io.Writer, root tag.Value, formatName string) error {
	switch formatName {
	case "tree":
		return writeTree(w, root)
	case "json":
		data, err := interop.ToJSONIndent(root, "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml":
		data, err := interop.ToYAML(root)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "cbor":
		data, err := interop.ToCBOR(root)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want tree, json, yaml or cbor)", formatName)
	}
}

func wireOptions(littleEndian, varint bool) []wire.Option {
	var opts []wire.Option
	if littleEndian {
		opts = append(opts, wire.WithLittleEndian())
	}
	if varint {
		opts = append(opts, wire.WithVarint(true))
	}

	return opts
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Nbtdump inspects and converts NBT documents.

Reads a document from FILE (or stdin), auto-detecting gzip, zlib, zstd
and LZ4 compression, then dumps the tag tree or re-encodes it.

Usage:
  nbtdump [flags] [FILE]

Examples:
  # Dump a world file as a tree
  nbtdump level.dat

  # Dump a varint-encoded document as JSON
  nbtdump --varint --format json player.dat

  # Recompress a gzip document with zstd
  nbtdump --out level.zstd --compress zstd level.dat

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
