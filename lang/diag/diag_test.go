package diag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListSinkReport(t *testing.T) {
	var sink ListSink
	sink.Report(UndefinedIdentifier, Position{Filename: "a.ruc", Line: 3, Column: 1}, "f")
	sink.Report(NoMain, Position{Filename: "a.ruc", Line: 1, Column: 1})

	err := sink.Err()
	require.Error(t, err)

	var el ErrorList
	require.ErrorAs(t, err, &el)
	require.Len(t, el, 2)
	// sorted by position: line 1 before line 3
	require.Equal(t, "no-main", el[0].Msg)
	require.Equal(t, "undefined-identifier: f", el[1].Msg)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "duplicate-definition", DuplicateDefinition.String())
	require.Equal(t, "unknown-diagnostic", Kind(255).String())
}
