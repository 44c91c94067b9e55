// Command black is a minimal wiring demo for the logic pipeline engine: it
// builds a tiny module by hand, runs it through the surrogate-encoder
// stage, drives the reference backend, and prints the verdict. It is
// deliberately not a front end — no file loading, no formula parser, no
// subcommands; those are out of scope for this module. It exists only to
// show the four pieces (term, module, pipeline, solver) wired together end
// to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/black-sat/black/internal/backend/ref"
	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/module"
	"github.com/black-sat/black/internal/pipeline"
	"github.com/black-sat/black/internal/solver"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/types"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func main() {
	timeout := flag.Duration("timeout", 2*time.Second, "check timeout")
	bound := flag.Int("bound", 4, "reference backend trace bound")
	flag.Parse()

	m := demoModule()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	f := solver.New(ref.New(*bound), pipeline.SurrogateEncoder)
	verdict, err := f.Check(ctx, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}

	switch verdict {
	case solver.Sat:
		fmt.Println(green("sat"))
	case solver.Unsat:
		fmt.Println(red("unsat"))
	default:
		fmt.Println(yellow("unknown"))
	}
}

// demoModule builds always(p -> eventually(q)), with p, q : boolean
// declared and p required true, the shape of spec.md §8's S5 scenario.
func demoModule() *module.Module {
	m := module.New("demo")
	r := module.NewResolver(m)

	p := label.Of("p")
	q := label.Of("q")
	_, _ = r.Declare("top", module.ModeForbidden, p, types.Default().Boolean())
	_, _ = r.Declare("top", module.ModeForbidden, q, types.Default().Boolean())

	pe, _ := r.Resolve(p)
	qe, _ := r.Resolve(q)

	formula := term.Always(term.Implication(term.Object(pe), term.Eventually(term.Object(qe))))
	_ = r.Require(formula)
	_ = r.Require(term.Object(pe))

	return m
}
