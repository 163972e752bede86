package parser_test

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

var testUpdateParserGoldenTests = flag.Bool("test.update-parser-golden-tests", false, "If set, replace expected parser golden test results with actual results.")

// TestParseGolden drives the real parse command (maincmd.ParseFiles) over
// testdata/in/*.ruc and diffs the printed AST against testdata/out. Lives
// in the external parser_test package for the same import-cycle reason as
// lang/scanner's golden test: maincmd imports lang/parser.
func TestParseGolden(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".ruc") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf}

			if err := maincmd.ParseFiles(ctx, stdio, filepath.Join(srcDir, fi.Name())); err != nil {
				t.Fatalf("ParseFiles: %v", err)
			}
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateParserGoldenTests)
		})
	}
}
