package pipeline

import (
	"strings"
	"testing"

	"github.com/black-sat/black/internal/consumer"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/types"
	"github.com/stretchr/testify/require"
)

func TestSMTLIB2PrinterRendersDeclarationsAndAsserts(t *testing.T) {
	var buf strings.Builder
	rec := &recordingConsumer{}
	stage := SMTLIB2Printer(&buf)

	p := stage(func(sink consumer.Consumer) error {
		e := entity("p", types.Default().Boolean(), nil)
		if err := sink.Import(e); err != nil {
			return err
		}
		return sink.State(consumer.StateRequirement, term.Object(e))
	})
	require.NoError(t, Run(rec, p))

	out := buf.String()
	require.Contains(t, out, "(declare-fun p Bool)")
	require.Contains(t, out, "(assert")
	require.Len(t, rec.imported, 1)
	require.Len(t, rec.states, 1)
}
