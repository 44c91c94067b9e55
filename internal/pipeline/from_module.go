package pipeline

import (
	"github.com/black-sat/black/internal/consumer"
	"github.com/black-sat/black/internal/module"
)

// FromModule returns the base Producer that every Stage chain ultimately
// wraps: it hands the sink one Consumer.Adopt call per Root m holds, in
// first-use order (spec.md §4.5/§4.6 "adopt"), then asserts each of m's
// requirements as a StateRequirement (spec.md §4.7). Adopting by Root
// rather than flattening m.AllEntities() is what lets a backend see which
// entities share a recursion Mode (spec.md §3.5/§6) — a mode=allowed
// root's mutually-recursive definitions arrive as one group, not as a
// flattened entity stream indistinguishable from a mode=forbidden root's.
func FromModule(m *module.Module) Producer {
	return func(sink consumer.Consumer) error {
		for _, root := range m.Roots() {
			if err := sink.Adopt(root); err != nil {
				return err
			}
		}
		for _, req := range m.Requirements() {
			if err := sink.State(consumer.StateRequirement, req); err != nil {
				return err
			}
		}
		return nil
	}
}
