// Package batch runs the Huffman encoder over a single file or over every
// regular file directly inside a directory. Each file is an independent
// encoding; one file failing never stops the others.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/asaecs2/File-Compression-with-Huffman-Encoding/huffman"
)

const (
	// DefaultSuffix is appended to input names to name their outputs.
	DefaultSuffix = ".huff"
	// DefaultSidecarSuffix is appended to output names to name their sidecars.
	DefaultSidecarSuffix = ".table"
)

var (
	// ErrNotDirectory is returned when the input of CompressDir is missing
	// or is not a directory.
	ErrNotDirectory = errors.New("batch: input is not a directory")
	// ErrSameFile is returned when an output path names its own input.
	ErrSameFile = errors.New("batch: output is the input file")
)

// Options configures a Driver. Zero values select the defaults.
type Options struct {
	// Suffix is appended to each input file name to name its output.
	Suffix string
	// Workers bounds how many files are encoded at once.
	Workers int
	// WriteSidecar stores the frequency table and checksum of each file
	// next to its output, so the output can be decoded later.
	WriteSidecar  bool
	SidecarSuffix string
	Logger        *log.Logger
}

// Driver encodes files.
type Driver struct {
	opts Options
}

// New returns a Driver with opts, filling in defaults.
func New(opts Options) *Driver {
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	if opts.SidecarSuffix == "" {
		opts.SidecarSuffix = DefaultSidecarSuffix
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Driver{opts: opts}
}

// FileResult is the outcome for one input file. Exactly one of Result and
// Err is set.
type FileResult struct {
	Input   string
	Output  string
	Sidecar string
	Result  *huffman.Result
	Err     error
}

// CompressFile encodes inPath into outPath. On failure no output file is
// left behind.
func (d *Driver) CompressFile(ctx context.Context, inPath, outPath string) FileResult {
	fr := FileResult{Input: inPath, Output: outPath}
	if err := ctx.Err(); err != nil {
		fr.Err = err
		return fr
	}
	res, err := d.encodeFile(inPath, outPath)
	if err != nil {
		fr.Err = err
		d.opts.Logger.Printf("%s: %v", inPath, err)
		return fr
	}
	fr.Result = res

	if d.opts.WriteSidecar {
		fr.Sidecar = outPath + d.opts.SidecarSuffix
		if err := writeSidecarFile(fr.Sidecar, huffman.SidecarFor(res)); err != nil {
			os.Remove(outPath)
			fr.Result = nil
			fr.Err = err
			d.opts.Logger.Printf("%s: %v", inPath, err)
			return fr
		}
	}
	d.opts.Logger.Printf("%s -> %s: %d -> %d bytes", inPath, outPath, res.InputBytes, res.OutputBytes)
	return fr
}

func (d *Driver) encodeFile(inPath, outPath string) (res *huffman.Result, err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	out, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	if same, err := sameFile(in, out); err != nil || same {
		out.Close()
		if err == nil {
			err = fmt.Errorf("%w: %s", ErrSameFile, outPath)
		}
		return nil, err
	}
	defer func() {
		if cErr := out.Close(); cErr != nil && err == nil {
			err = cErr
		}
		if err != nil {
			os.Remove(outPath)
			res = nil
		}
	}()

	if err := out.Truncate(0); err != nil {
		return nil, err
	}
	return huffman.Encode(in, out)
}

func sameFile(a, b *os.File) (bool, error) {
	ai, err := a.Stat()
	if err != nil {
		return false, err
	}
	bi, err := b.Stat()
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}

func writeSidecarFile(path string, s *huffman.Sidecar) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
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
	if err := huffman.WriteSidecar(f, s); err != nil {
		return fmt.Errorf("write sidecar %s: %w", path, err)
	}
	return nil
}

// CompressDir encodes every regular file directly inside inDir into outDir,
// naming each output after its input plus the configured suffix.
// Subdirectories are not entered. outDir is created if needed.
//
// Per-file failures are reported in the Report, not as the returned error.
// The returned error is set only when no file could be attempted or ctx was
// cancelled.
func (d *Driver) CompressDir(ctx context.Context, inDir, outDir string) (*Report, error) {
	info, err := os.Stat(inDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDirectory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, inDir)
	}
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	report := &Report{Files: make([]FileResult, len(names))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)
	for i, name := range names {
		g.Go(func() error {
			// each goroutine owns one slot of Files
			report.Files[i] = d.CompressFile(gctx,
				filepath.Join(inDir, name),
				filepath.Join(outDir, name+d.opts.Suffix))
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}
