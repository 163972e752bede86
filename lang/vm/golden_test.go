package vm

import (
	"bytes"
	"flag"
	"path/filepath"
	"testing"

	"github.com/ructeam/ruc/internal/filetest"
	"github.com/ructeam/ruc/lang/compiler"
)

var testUpdateDisasmGoldenTests = flag.Bool("test.update-disasm-golden-tests", false, "If set, replace expected disassembler golden test results with actual results.")

// syntheticPrograms holds hand-built tapes exercising Disassemble's
// addr/label/opcode rendering directly, without routing a source file
// through the full parse/compile pipeline (disasm only has to agree with
// lang/compiler on Program's layout, not reproduce it). Each key names the
// matching testdata/in fixture, which carries no parseable content of its
// own: it exists only so filetest.SourceFiles hands this test a name to
// pair with a testdata/out golden file.
var syntheticPrograms = map[string]*compiler.Program{
	"globals.prog": {
		Code: []int{
			int(compiler.ENTER), 2,
			int(compiler.CONST_INT), 5,
			int(compiler.RETVAL),
			int(compiler.STORE_GLOBAL), -3,
			int(compiler.POP),
		},
		Entry:      0,
		FuncAddrs:  []int{0},
		GlobalInit: 5,
	},
}

func TestDisassembleGolden(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".prog") {
		t.Run(fi.Name(), func(t *testing.T) {
			prog, ok := syntheticPrograms[fi.Name()]
			if !ok {
				t.Fatalf("no synthetic program registered for %s", fi.Name())
			}

			var buf bytes.Buffer
			if err := Disassemble(&buf, prog); err != nil {
				t.Fatal(err)
			}
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateDisasmGoldenTests)
		})
	}
}
