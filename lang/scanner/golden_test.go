package scanner_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"

	"github.com/ructeam/ruc/internal/filetest"
	"github.com/ructeam/ruc/internal/maincmd"
)

var testUpdateScannerGoldenTests = flag.Bool("test.update-scanner-golden-tests", false, "If set, replace expected scanner golden test results with actual results.")

// TestTokenizeGolden drives the real tokenize command (maincmd.TokenizeFiles)
// over testdata/in/*.ruc and diffs its stdout/stderr against testdata/out,
// the same filetest-based golden harness the teacher uses for its own
// scanner package. It lives in the external scanner_test package because
// maincmd imports lang/scanner; importing maincmd from the internal scanner
// package would be a cycle.
func TestTokenizeGolden(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".ruc") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

			_ = maincmd.TokenizeFiles(ctx, stdio, filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateScannerGoldenTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateScannerGoldenTests)
		})
	}
}
