package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/promptbrush/promptbrush/internal/pipeline"
)

func openBundle(t *testing.T, data []byte) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open bundle: %v", err)
	}
	zr.RegisterDecompressor(zipMethodZstd, func(r io.Reader) io.ReadCloser {
		zd, err := zstd.NewReader(r)
		if err != nil {
			t.Fatalf("zstd reader: %v", err)
		}
		return zd.IOReadCloser()
	})
	return zr
}

func TestBundleVariants(t *testing.T) {
	results := []pipeline.VariantResult{
		{Data: []byte("first variant payload"), Index: 0},
		{Data: []byte("second variant payload"), Index: 1},
	}

	data, err := BundleVariants(results)
	if err != nil {
		t.Fatalf("BundleVariants error: %v", err)
	}

	zr := openBundle(t, data)
	if len(zr.File) != 2 {
		t.Fatalf("got %d entries, want 2", len(zr.File))
	}

	wantNames := []string{"variant-00.jpg", "variant-01.jpg"}
	for i, f := range zr.File {
		if f.Name != wantNames[i] {
			t.Errorf("entry %d name = %q, want %q", i, f.Name, wantNames[i])
		}

		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %q: %v", f.Name, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %q: %v", f.Name, err)
		}
		if !bytes.Equal(got, results[i].Data) {
			t.Errorf("entry %q content does not round-trip", f.Name)
		}
	}
}

func TestBundleVariantsEmpty(t *testing.T) {
	if _, err := BundleVariants(nil); err == nil {
		t.Error("expected error for empty batch, got none")
	}
}
