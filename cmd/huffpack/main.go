// Command huffpack Huffman-encodes a file, or every regular file in a
// directory.
//
//	huffpack [-suffix .huff] [-workers N] [-sidecar] [-v] <input> <output>
//	huffpack -d -table <sidecar> <packed> <output>
//
// Packed output has no header. Pass -sidecar when compressing to store the
// frequency table next to each output; it is required to decompress.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/asaecs2/File-Compression-with-Huffman-Encoding/batch"
	"github.com/asaecs2/File-Compression-with-Huffman-Encoding/huffman"
)

func main() {
	var (
		suffix  = flag.String("suffix", batch.DefaultSuffix, "suffix appended to output file names")
		workers = flag.Int("workers", runtime.NumCPU(), "files encoded in parallel")
		sidecar = flag.Bool("sidecar", false, "write a <output>"+batch.DefaultSidecarSuffix+" frequency table per file")
		table   = flag.String("table", "", "sidecar to decompress with")
		decomp  = flag.Bool("d", false, "decompress <packed> into <output> using -table")
		verbose = flag.Bool("v", false, "log every file")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: huffpack [flags] <input> <output>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "huffpack: ", 0)
	var err error
	if *decomp {
		err = decompress(*table, flag.Arg(0), flag.Arg(1))
	} else {
		opts := batch.Options{
			Suffix:       *suffix,
			Workers:      *workers,
			WriteSidecar: *sidecar,
		}
		if *verbose {
			opts.Logger = logger
		}
		err = compress(batch.New(opts), flag.Arg(0), flag.Arg(1))
	}
	if err != nil {
		logger.Print(err)
		os.Exit(1)
	}
}

func compress(d *batch.Driver, in, out string) error {
	ctx := context.Background()
	p := message.NewPrinter(language.English)

	info, err := os.Stat(in)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		fr := d.CompressFile(ctx, in, out)
		if fr.Err != nil {
			return fr.Err
		}
		p.Printf("%s: %d -> %d bytes (%.1f%%)\n", in, fr.Result.InputBytes, fr.Result.OutputBytes, 100*fr.Result.Ratio())
		return nil
	}

	report, err := d.CompressDir(ctx, in, out)
	if err != nil {
		return err
	}
	inBytes, outBytes := report.Totals()
	p.Printf("%d files, %d failed: %d -> %d bytes\n", len(report.Files), len(report.Failed()), inBytes, outBytes)
	return report.Err()
}

func decompress(sidecarPath, in, out string) error {
	if sidecarPath == "" {
		return fmt.Errorf("-d needs -table <sidecar>")
	}
	sf, err := os.Open(sidecarPath)
	if err != nil {
		return err
	}
	defer sf.Close()
	s, err := huffman.ReadSidecar(sf)
	if err != nil {
		return fmt.Errorf("%s: %w", sidecarPath, err)
	}

	packed, err := os.Open(in)
	if err != nil {
		return err
	}
	defer packed.Close()
	return writeFile(out, func(w io.Writer) error {
		return huffman.DecodeVerified(packed, w, s)
	})
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = cErr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return fn(f)
}
