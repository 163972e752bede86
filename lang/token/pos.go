package token

import gotoken "go/token"

// Pos, File and FileSet are re-exported from the standard library's go/token
// package, the same idiom the scanner package uses for go/scanner.Error and
// go/scanner.ErrorList: byte-offset positions resolved lazily to line/column
// through a FileSet, rather than a bespoke position encoding.
type (
	Pos      = gotoken.Pos
	Position = gotoken.Position
	File     = gotoken.File
	FileSet  = gotoken.FileSet
)

// NoPos is the zero value for Pos; it means "no position" (Pos.IsValid()
// reports false).
const NoPos = gotoken.NoPos

// NewFileSet creates a new, empty FileSet.
func NewFileSet() *FileSet { return gotoken.NewFileSet() }
