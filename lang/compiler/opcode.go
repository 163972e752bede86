package compiler

import "github.com/ructeam/ruc/lang/token"

// Opcode is one cell of the flat bytecode tape (spec.md §4.4: "the pool has
// no concept of instructions... all semantics are carried by the producer
// and the consumer"). The specific encoding below is this core's own — the
// surrounding VM's instruction set is specified elsewhere and is opaque to
// the compiler (spec.md §6) — but the shape (an operand stack, frame-
// relative local addressing, a code address per jump/call) follows the
// original RuC compiler's model described in original_source/libs/compiler.
//
// "x OP y" stack pictures mirror the convention used throughout this
// project's reference material: values to the left of the opcode name are
// popped, values to the right are pushed.
type Opcode int

const ( //nolint:revive
	NOP Opcode = iota

	POP //   x POP -

	CONST_INT // - CONST_INT<v>    v
	CONST_FLT // - CONST_FLT<bits> v

	LOAD_LOCAL   //   -  LOAD_LOCAL<displ>    v
	LOAD_GLOBAL  //   -  LOAD_GLOBAL<displ>   v
	STORE_LOCAL  //   v  STORE_LOCAL<displ>   v
	STORE_GLOBAL //   v  STORE_GLOBAL<displ>  v

	// binary arithmetic/bitwise (order matches token.Token's operator block)
	ADD // x y ADD x+y
	SUB // x y SUB x-y
	MUL // x y MUL x*y
	DIV // x y DIV x/y
	MOD // x y MOD x%y
	AND // x y AND x&y
	OR  // x y OR  x|y
	XOR // x y XOR x^y
	SHL // x y SHL x<<y
	SHR // x y SHR x>>y

	// comparisons, push 0/1
	LT
	LE
	GT
	GE
	EQL
	NEQ

	// unary
	NEG    // x NEG -x
	BNOT   // x BNOT ~x
	LOGNOT // x LOGNOT !x

	PREINC  //   -  PREINC<displ,global>  v (v already incremented)
	PREDEC  //   -  PREDEC<displ,global>  v
	POSTINC //   -  POSTINC<displ,global> v (v before increment)
	POSTDEC //   -  POSTDEC<displ,global> v

	// control flow
	JMP    //   - JMP<addr>  -
	JZ     //   x JZ<addr>   -   jump if x == 0
	CALL   // args.. CALL<funcIndex,argc> v
	RET    //   - RET      -
	RETVAL //   x RETVAL   -

	ENTER // - ENTER<frameSize> -
	LEAVE // - LEAVE            -
)

// binaryOp maps a token operator to the opcode that implements it, for the
// token classes lang/parser's expression grammar treats as plain binary
// operators (logical && and || are handled separately by the emitter via
// short-circuiting jumps, not a table entry here).
var binaryOp = map[token.Token]Opcode{
	token.PLUS:    ADD,
	token.MINUS:   SUB,
	token.STAR:    MUL,
	token.SLASH:   DIV,
	token.PERCENT: MOD,
	token.AMP:     AND,
	token.PIPE:    OR,
	token.CARET:   XOR,
	token.SHL:     SHL,
	token.SHR:     SHR,
	token.LT:      LT,
	token.LE:      LE,
	token.GT:      GT,
	token.GE:      GE,
	token.EQL:     EQL,
	token.NEQ:     NEQ,
}
