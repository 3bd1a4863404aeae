package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var builtinSeeds = []string{
	"",
	"module m(input wire [3:0] a, output logic b); endmodule\n",
	"package p;\n  typedef logic [7:0] byte_t;\nendpackage\n",
	"import p::*, q::item;\nexport p::*;\n",
	"always_comb begin\n  case (s)\n    2'b01: y = a;\n    default: y = '0;\n  endcase\nend\n",
	"initial begin\n  fork\n    #1ns $display(\"x=%0d\", x);\n  join_none\nend\n",
	"`define W 8 \\\n  + 1\n`ifdef W\nwire [`W-1:0] w;\n`endif\n",
	"assign x = a - -b; assign y = a/ /*c*/b; assign \\esc+id = 1'bz;\n",
	"class c extends base;\n  function void f(); endfunction\nendclass\n",
	"module m; /* unterminated",
	"wire a = \"unterminated;\n",
	"endmodule\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
}

// addTestdataSeeds adds the formatter's golden inputs.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "format", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".sv" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
