// Package pipeline implements the producer -> consumer streaming
// architecture of spec.md §2 component 8 / §4.7: a Module's entities and
// requirements flow through zero or more transforming Stages before
// reaching a consumer.Consumer. Stages compose as ordinary Go middleware
// (func(Producer) Producer), the same shape net/http middleware chains
// use, rather than a bespoke visitor/listener framework.
package pipeline

import "github.com/black-sat/black/internal/consumer"

// Producer drives a consumer.Consumer: it is handed the terminal Consumer
// to write into and performs whatever Import/Adopt/State/Push/Pop calls
// its stage requires, returning the first error encountered.
type Producer func(sink consumer.Consumer) error

// Stage transforms a Producer into another Producer, typically by
// wrapping sink in an intermediate consumer.Consumer that intercepts
// State() calls, rewrites the formula, and forwards the result to sink
// (see SurrogateEncoder for the canonical example).
type Stage func(next Producer) Producer

// Identity is the no-op Stage.
func Identity(next Producer) Producer { return next }

// Compose chains stages left to right: Compose(a, b)(p) behaves as
// a(b(p)) — the first stage in the list is the outermost wrapper, so it
// sees (and can rewrite) what every later stage produces before the
// terminal sink does. This matches how a request-logging middleware is
// usually placed outermost in an HTTP handler chain.
func Compose(stages ...Stage) Stage {
	return func(next Producer) Producer {
		p := next
		for i := len(stages) - 1; i >= 0; i-- {
			p = stages[i](p)
		}
		return p
	}
}

// Run builds the full chain and drives sink with it in one call.
func Run(sink consumer.Consumer, producer Producer) error {
	return producer(sink)
}
