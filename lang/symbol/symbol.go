// Package symbol implements the scope stack and symbol table: it maps
// identifier representations to (mode, displacement, kind) bindings,
// enforces one-definition with predeclaration slack for functions, and
// provides the nested block/function scope discipline of spec.md §4.3.
//
// A symbol record, laid out in a pool.Pool, is 4 cells wide:
//
//	i+0 : previous binding of the same spelling (shadowed offset, or pool.NoHandle)
//	i+1 : back-reference to the representation record; negated if this is a
//	      function predeclaration awaiting its definition
//	i+2 : mode (type handle); 0 sentinel for an unresolved forward goto label
//	i+3 : displacement
package symbol

import (
	"github.com/ructeam/ruc/lang/ident"
	"github.com/ructeam/ruc/lang/mode"
	"github.com/ructeam/ruc/lang/pool"
)

// Kind distinguishes what a symbol record denotes (spec.md §4.3).
type Kind uint8

const (
	_ Kind = iota
	Variable
	FunctionDefinition
	FunctionPredeclaration
	Label
	TypeDefinition
	FunctionParameter
)

// recWidth is the width, in cells, of one symbol record.
const recWidth = 4

// Table is the scope stack and symbol table combined: one pool of 4-cell
// symbol records, plus the allocation-direction bookkeeping
// (displacement/lg/maxdispl) that spec.md §4.3 describes per scope kind.
type Table struct {
	pool   *pool.Pool
	idents *ident.Table
	modes  *mode.Table

	curid pool.Handle // boundary: symbols at or above this offset belong to the current scope
	displ int
	lg    int // +1 inside functions, -1 in global scope

	maxdispl  int // high-water mark of the current function's frame (frame size)
	maxdisplg int // most negative global displacement reached

	// predef is the list of representation handles with an outstanding
	// function predeclaration (spec.md §9 "Predef list": "acceptable
	// asymptotically because the list length bounds the count of undefined
	// functions seen so far").
	predef []pool.Handle

	// pendingLabels is the same bound-list idea transposed to goto targets
	// (SPEC_FULL.md §3 "goto/label forward references"): every
	// representation handle that ReferenceLabel forward-declared but that no
	// matching DefineLabel has since resolved.
	pendingLabels []pool.Handle

	mainRepr  pool.Handle
	mainBound bool
}

// New creates a symbol table in program (global) scope: lg=-1, displ=-3
// (spec.md §4.3 "Program scope").
func New(idents *ident.Table, modes *mode.Table) *Table {
	t := &Table{pool: pool.New(1024, 0), idents: idents, modes: modes}
	t.pool.Reserve(recWidth - 1) // align the first real record to a recWidth boundary
	t.curid = pool.Handle(t.pool.Len())
	t.displ = -3
	t.lg = -1
	t.maxdisplg = -3
	return t
}

// SetMain records which representation handle is the reserved entry point,
// so that MainBound can report when it is bound to a function definition.
func (t *Table) SetMain(repr pool.Handle) { t.mainRepr = repr }

// MainRepr returns the representation handle SetMain recorded as the
// program's entry point (consumed by lang/compiler to find main's compiled
// address for the bytecode pool's prologue slot).
func (t *Table) MainRepr() pool.Handle { return t.mainRepr }

// Snapshot is the (symbol-table cursor, displacement, allocation direction)
// triple saved on scope entry and restored on exit (spec.md glossary
// "Scope snapshot").
type Snapshot struct {
	curid    pool.Handle
	displ    int
	lg       int
	maxdispl int
}

// EnterBlock snapshots the current scope (spec.md §4.3 "Block scope: On
// entry, snapshot curid..., displ..., and lg...").
func (t *Table) EnterBlock() Snapshot {
	snap := Snapshot{curid: t.curid, displ: t.displ, lg: t.lg}
	t.curid = pool.Handle(t.pool.Len())
	return snap
}

// ExitBlock restores bindings shadowed since the matching EnterBlock, then
// restores displ, lg and curid (I2: curid "strictly decreases back to its
// saved value on the matching exit").
func (t *Table) ExitBlock(snap Snapshot) {
	t.unwind(t.curid)
	t.curid = snap.curid
	t.displ = snap.displ
	t.lg = snap.lg
}

// EnterFunc is like EnterBlock but additionally resets displ to 3 and lg to
// +1, and starts tracking maxdispl as the function's frame-size high-water
// mark (spec.md §4.3 "Function scope").
func (t *Table) EnterFunc() Snapshot {
	snap := Snapshot{curid: t.curid, displ: t.displ, lg: t.lg, maxdispl: t.maxdispl}
	t.curid = pool.Handle(t.pool.Len())
	t.displ = 3
	t.lg = 1
	t.maxdispl = 3
	return snap
}

// ExitFunc restores the snapshot like ExitBlock and returns the computed
// frame size (the function's maxdispl high-water mark), for the caller to
// patch into the function's prologue slot in the tree/bytecode pool
// (spec.md §9: "keep an explicit list of function prologue node offsets
// rather than hard-coding the convention that a specific tree cell is the
// frame-size slot" — RuC's callers do exactly that, see lang/compiler).
func (t *Table) ExitFunc(snap Snapshot) (frameSize int) {
	t.unwind(t.curid)
	frameSize = t.maxdispl
	t.curid = snap.curid
	t.displ = snap.displ
	t.lg = snap.lg
	t.maxdispl = snap.maxdispl
	return frameSize
}

// unwind restores, for every symbol committed since floor, the owning
// representation's current-binding slot to that symbol's "previous
// binding" cell (spec.md §4.3's scope-exit walk, and P3: scope round-trip).
func (t *Table) unwind(floor pool.Handle) {
	n := pool.Handle(t.pool.Len())
	for i := n; i > floor; i -= recWidth {
		rec := i - recWidth
		reprRaw := t.pool.Get(rec + 1)
		repr := pool.Handle(reprRaw)
		if reprRaw < 0 {
			repr = pool.Handle(-reprRaw)
		}
		prev := t.pool.Get(rec)
		if prev == 0 {
			t.idents.SetBinding(repr, ident.Binding{Kind: ident.BindUnbound})
		} else {
			t.idents.SetBinding(repr, ident.Binding{Kind: ident.BindSymbol, SymbolOffset: prev})
		}
	}
}

// alloc advances displ by n cells in the current allocation direction and
// returns the displacement assigned to the record that triggered the
// allocation (spec.md §3 "Global scope allocate by decrementing displ").
func (t *Table) alloc(n int) int {
	if t.lg > 0 {
		d := t.displ
		t.displ += n
		if t.displ > t.maxdispl {
			t.maxdispl = t.displ
		}
		return d
	}
	t.displ -= n
	if -t.displ > -t.maxdisplg {
		t.maxdisplg = t.displ
	}
	return t.displ
}

// inCurrentScope reports whether a binding found via CurrentBinding was
// established within the scope currently being populated (i.e. is at or
// above curid), which is what makes it a same-scope collision rather than a
// shadow of an outer declaration.
func (t *Table) inCurrentScope(b ident.Binding) (pool.Handle, bool) {
	if b.Kind != ident.BindSymbol {
		return 0, false
	}
	off := pool.Handle(b.SymbolOffset)
	return off, off >= t.curid
}

// Resolve looks up repr's current binding (from any enclosing scope, not
// just the innermost) and returns its symbol record, for a reference site
// that is not itself declaring anything (an identifier used in an
// expression). ok is false when repr names no symbol currently in scope.
func (t *Table) Resolve(repr pool.Handle) (pool.Handle, bool) {
	b := t.idents.CurrentBinding(repr)
	if b.Kind != ident.BindSymbol {
		return pool.NoHandle, false
	}
	return pool.Handle(b.SymbolOffset), true
}

// DefineVariable allocates a new variable binding for repr with mode m,
// assigning it the next displacement in the current scope's allocation
// direction.
func (t *Table) DefineVariable(repr pool.Handle, m pool.Handle) (pool.Handle, bool) {
	if _, collide := t.inCurrentScope(t.idents.CurrentBinding(repr)); collide {
		return pool.NoHandle, false
	}
	displ := t.alloc(t.modes.SizeOf(m))
	return t.commit(repr, Variable, m, displ, false), true
}

// DefineParam allocates a function-parameter binding, same shape as a
// variable but kept as a distinct Kind for symbol_query consumers.
func (t *Table) DefineParam(repr pool.Handle, m pool.Handle) (pool.Handle, bool) {
	if _, collide := t.inCurrentScope(t.idents.CurrentBinding(repr)); collide {
		return pool.NoHandle, false
	}
	displ := t.alloc(t.modes.SizeOf(m))
	return t.commit(repr, FunctionParameter, m, displ, false), true
}

// DefineTypeDef binds repr to a type definition: no storage is allocated,
// displacement carries the type-initializer index the caller assigns
// (spec.md §3 "type-initializer index").
func (t *Table) DefineTypeDef(repr pool.Handle, m pool.Handle, initIndex int) (pool.Handle, bool) {
	if _, collide := t.inCurrentScope(t.idents.CurrentBinding(repr)); collide {
		return pool.NoHandle, false
	}
	return t.commit(repr, TypeDefinition, m, initIndex, false), true
}

// DefineFunction defines or predeclares a function. When predeclare is
// true, the back-reference is stored negated and repr is appended to the
// predeclaration list (spec.md §4.3). When predeclare is false, any
// pending predeclaration for repr is cleared; a prior predeclaration in the
// current scope is the one collision this call tolerates (§9 open
// question: "allow predeclaration→definition, forbid all other
// re-bindings in the same scope").
func (t *Table) DefineFunction(repr pool.Handle, m pool.Handle, addr int, predeclare bool) (pool.Handle, bool) {
	prevOff, collide := t.inCurrentScope(t.idents.CurrentBinding(repr))
	if collide {
		prevBackref := t.pool.Get(prevOff + 1)
		wasPredecl := prevBackref < 0
		if !wasPredecl || predeclare {
			// redefining a definition, or predeclaring on top of an existing
			// predeclaration/definition, is always forbidden.
			return pool.NoHandle, false
		}
		// predeclaration -> definition: falls through to commit a new record;
		// the predecl stays in t.predef until clearPredef below removes it.
	}
	h := t.commit(repr, FunctionDefinition, m, addr, predeclare)
	if predeclare {
		t.predef = append(t.predef, repr)
	} else {
		t.clearPredef(repr)
	}
	return h, true
}

// clearPredef removes every pending predeclaration for repr (spec.md §9:
// "a linear scan... acceptable asymptotically").
func (t *Table) clearPredef(repr pool.Handle) {
	out := t.predef[:0]
	for _, r := range t.predef {
		if r != repr {
			out = append(out, r)
		}
	}
	t.predef = out
}

// PendingPredeclarations returns the representation handles of every
// function that was predeclared but never defined (consumed by lang/sema).
func (t *Table) PendingPredeclarations() []pool.Handle {
	return append([]pool.Handle(nil), t.predef...)
}

// ReferenceLabel resolves or forward-declares a goto target: if repr is not
// yet bound to a label in scope, it creates an unresolved placeholder
// (mode 0, spec.md §4.3); if it already is, the existing record is reused.
func (t *Table) ReferenceLabel(repr pool.Handle) pool.Handle {
	if off, ok := t.inCurrentScope(t.idents.CurrentBinding(repr)); ok {
		return off
	}
	t.pendingLabels = append(t.pendingLabels, repr)
	return t.commit(repr, Label, pool.NoHandle, 0, false)
}

// DefineLabel resolves a label definition at code address addr: if repr was
// already forward-referenced (mode 0), it patches that same record's mode
// to 1 and displacement to addr and clears repr from pendingLabels;
// otherwise it commits a fresh, already resolved label record. Re-defining
// an already-resolved label is a collision.
func (t *Table) DefineLabel(repr pool.Handle, addr int) (pool.Handle, bool) {
	if off, ok := t.inCurrentScope(t.idents.CurrentBinding(repr)); ok {
		if t.pool.Get(off+2) == int(pool.NoHandle) {
			t.pool.Set(off+2, 1)
			t.pool.Set(off+3, addr)
			t.clearPendingLabel(repr)
			return off, true
		}
		return pool.NoHandle, false
	}
	return t.commit(repr, Label, 1, addr, false), true
}

// clearPendingLabel removes every pendingLabels entry for repr (same linear
// scan as clearPredef; label tables are as small as function predeclaration
// lists in practice).
func (t *Table) clearPendingLabel(repr pool.Handle) {
	out := t.pendingLabels[:0]
	for _, r := range t.pendingLabels {
		if r != repr {
			out = append(out, r)
		}
	}
	t.pendingLabels = out
}

// PendingLabels returns the representation handles of every label that was
// goto'd but never defined (consumed by lang/sema, supplementing
// PendingPredeclarations with the label-side half of the same "forward
// reference left unresolved" check).
func (t *Table) PendingLabels() []pool.Handle {
	return append([]pool.Handle(nil), t.pendingLabels...)
}

// commit appends a fresh symbol record, links it into repr's shadow chain,
// and rebinds repr to point at it.
func (t *Table) commit(repr pool.Handle, kind Kind, m pool.Handle, displ int, negateBackref bool) pool.Handle {
	prevBinding := t.idents.CurrentBinding(repr)
	var prev int
	if prevBinding.Kind == ident.BindSymbol {
		prev = prevBinding.SymbolOffset
	}

	rec := t.pool.Reserve(recWidth)
	t.pool.Set(rec+0, prev)
	backref := int(repr)
	if negateBackref {
		backref = -backref
	}
	t.pool.Set(rec+1, backref)
	t.pool.Set(rec+2, int(m))
	t.pool.Set(rec+3, displ)

	if repr == t.mainRepr && kind == FunctionDefinition && !negateBackref {
		t.mainBound = true
	}
	t.idents.SetBinding(repr, ident.Binding{Kind: ident.BindSymbol, SymbolOffset: int(rec)})
	_ = kind // kind is not stored on the wire layout (spec.md's 4-cell record has
	// no kind field); symbol_query derives it from context (mode sentinel for
	// labels, negated back-ref for predeclarations) the same way spec.md §4.3
	// does. Beyond the main check above it is kept as a parameter for
	// call-site clarity.
	return rec
}

// Mode returns the mode handle of symbol rec.
func (t *Table) Mode(rec pool.Handle) pool.Handle { return pool.Handle(t.pool.Get(rec + 2)) }

// Displacement returns the displacement of symbol rec.
func (t *Table) Displacement(rec pool.Handle) int { return t.pool.Get(rec + 3) }

// Representation returns the representation handle symbol rec denotes.
func (t *Table) Representation(rec pool.Handle) pool.Handle {
	v := t.pool.Get(rec + 1)
	if v < 0 {
		v = -v
	}
	return pool.Handle(v)
}

// MainBound reports whether the entry-point representation set via SetMain
// has been bound to a function definition (consumed by lang/sema to raise
// diag.NoMain).
func (t *Table) MainBound() bool { return t.mainBound }

// IsPendingPredeclaration reports whether rec is a function predeclaration
// still awaiting its definition.
func (t *Table) IsPendingPredeclaration(rec pool.Handle) bool {
	return t.pool.Get(rec+1) < 0
}
