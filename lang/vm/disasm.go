// Package vm reads the flat tape lang/compiler produces (spec.md §4.4/§6:
// a prologue slot, function text, a function address table, global
// initializer code) without executing it. The stack machine that actually
// runs this tape is specified elsewhere and out of scope here (spec.md
// §6); this package only has to agree with lang/compiler on the layout, so
// a disassembler or a future standalone VM can be built against it.
package vm

import (
	"fmt"
	"io"

	"github.com/ructeam/ruc/lang/compiler"
)

// operandCount reports how many int cells follow an opcode on the tape,
// mirroring the stack-picture comments in lang/compiler/opcode.go.
func operandCount(op compiler.Opcode) int {
	switch op {
	case compiler.NOP, compiler.POP,
		compiler.ADD, compiler.SUB, compiler.MUL, compiler.DIV, compiler.MOD,
		compiler.AND, compiler.OR, compiler.XOR, compiler.SHL, compiler.SHR,
		compiler.LT, compiler.LE, compiler.GT, compiler.GE, compiler.EQL, compiler.NEQ,
		compiler.NEG, compiler.BNOT, compiler.LOGNOT,
		compiler.RET, compiler.RETVAL, compiler.LEAVE:
		return 0
	case compiler.CONST_INT, compiler.CONST_FLT,
		compiler.LOAD_LOCAL, compiler.LOAD_GLOBAL,
		compiler.STORE_LOCAL, compiler.STORE_GLOBAL,
		compiler.JMP, compiler.JZ, compiler.ENTER:
		return 1
	case compiler.CALL, compiler.PREINC, compiler.PREDEC, compiler.POSTINC, compiler.POSTDEC:
		return 2
	default:
		return 0
	}
}

var opcodeNames = map[compiler.Opcode]string{
	compiler.NOP: "NOP", compiler.POP: "POP",
	compiler.CONST_INT: "CONST_INT", compiler.CONST_FLT: "CONST_FLT",
	compiler.LOAD_LOCAL: "LOAD_LOCAL", compiler.LOAD_GLOBAL: "LOAD_GLOBAL",
	compiler.STORE_LOCAL: "STORE_LOCAL", compiler.STORE_GLOBAL: "STORE_GLOBAL",
	compiler.ADD: "ADD", compiler.SUB: "SUB", compiler.MUL: "MUL", compiler.DIV: "DIV", compiler.MOD: "MOD",
	compiler.AND: "AND", compiler.OR: "OR", compiler.XOR: "XOR", compiler.SHL: "SHL", compiler.SHR: "SHR",
	compiler.LT: "LT", compiler.LE: "LE", compiler.GT: "GT", compiler.GE: "GE", compiler.EQL: "EQL", compiler.NEQ: "NEQ",
	compiler.NEG: "NEG", compiler.BNOT: "BNOT", compiler.LOGNOT: "LOGNOT",
	compiler.PREINC: "PREINC", compiler.PREDEC: "PREDEC", compiler.POSTINC: "POSTINC", compiler.POSTDEC: "POSTDEC",
	compiler.JMP: "JMP", compiler.JZ: "JZ", compiler.CALL: "CALL",
	compiler.RET: "RET", compiler.RETVAL: "RETVAL",
	compiler.ENTER: "ENTER", compiler.LEAVE: "LEAVE",
}

// Disassemble writes one line per instruction of prog.Code to w, annotating
// the addresses lang/compiler recorded for the entry point, each compiled
// function, and the global initializer block.
func Disassemble(w io.Writer, prog *compiler.Program) error {
	funcAt := make(map[int]int, len(prog.FuncAddrs))
	for i, a := range prog.FuncAddrs {
		funcAt[a] = i
	}

	for pc := 0; pc < len(prog.Code); {
		if idx, ok := funcAt[pc]; ok {
			if _, err := fmt.Fprintf(w, "func@%d:\n", idx); err != nil {
				return err
			}
		}
		if pc == prog.Entry {
			if _, err := fmt.Fprintln(w, "entry:"); err != nil {
				return err
			}
		}
		if pc == prog.GlobalInit {
			if _, err := fmt.Fprintln(w, "globalinit:"); err != nil {
				return err
			}
		}

		op := compiler.Opcode(prog.Code[pc])
		name, known := opcodeNames[op]
		if !known {
			name = fmt.Sprintf("<op %d>", op)
		}
		n := operandCount(op)
		args := prog.Code[pc+1 : pc+1+n]

		if _, err := fmt.Fprintf(w, "%6d  %-12s", pc, name); err != nil {
			return err
		}
		for _, a := range args {
			if _, err := fmt.Fprintf(w, " %d", a); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		pc += 1 + n
	}
	return nil
}
