package preprocessor

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/ructeam/ruc/internal/filetest"
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/macro"
)

var testUpdatePreprocessorGoldenTests = flag.Bool("test.update-preprocessor-golden-tests", false, "If set, replace expected preprocessor golden test results with actual results.")

// TestRunGolden feeds testdata/in/*.ruc straight through Run and diffs the
// expanded text against testdata/out, the same filetest-based golden
// harness the teacher wires into its own packages (lang/scanner,
// lang/resolver). No CLI layer sits between the fixture and Run here:
// Run's whole-file macro expansion is the thing under test, not a driver
// command.
func TestRunGolden(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".ruc") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}

			store := macro.New()
			var sink diag.ListSink
			got := Run(string(src), store, &sink)
			filetest.DiffOutput(t, fi, got, resultDir, testUpdatePreprocessorGoldenTests)
		})
	}
}
