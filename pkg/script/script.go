// Package script exposes the mutation engine to automation callers as
// a small sandboxed Lisp dialect. Each builtin maps onto one engine
// operation, so an AI or batch caller can express a sequence of
// structural intents as a script:
//
//	(set-styles (add-element :text :content "Hello") :font-size 24)
//	(add-page "Pricing")
//
// Evaluation is best-effort: a failing form stops the script, but the
// effects of forms already applied stay in place (and in history), the
// way a human editor's partial work would.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/vellumhq/vellum/pkg/engine"
)

// EvalTimeout is the hard limit for a single script run.
const EvalTimeout = 5 * time.Second

// EvalError is a non-fatal script failure: a parse error or a runtime
// error inside user code, with source position when zygomys reports one.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result is the outcome of one script run.
type Result struct {
	// Value is the final form's result rendered as a string, usually
	// the last created element or page ID.
	Value string
	// Errors holds non-fatal evaluation errors. Effects of forms that
	// ran before the failure remain applied.
	Errors []EvalError
}

// Runner evaluates scripts against one mutation engine. A fresh
// sandboxed zygomys environment is created per run; only one run
// executes at a time.
type Runner struct {
	mu         sync.Mutex
	eng        *engine.Engine
	generation uint64
}

// NewRunner wraps a mutation engine.
func NewRunner(eng *engine.Engine) *Runner {
	return &Runner{eng: eng}
}

type runOutcome struct {
	result Result
	err    error
}

// Run evaluates one script. Parse and runtime errors come back inside
// Result; the returned error is reserved for fatal conditions (panic,
// timeout). On timeout the run is flagged canceled so any still-running
// builtin chain stops touching the engine.
func (r *Runner) Run(source string) (Result, error) {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.mu.Unlock()

	var canceled atomic.Bool
	ch := make(chan runOutcome, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				ch <- runOutcome{err: fmt.Errorf("panic during script run: %v", rec)}
			}
		}()
		res := r.evaluate(source, &canceled)
		ch <- runOutcome{result: res}
	}()

	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		r.mu.Lock()
		current := r.generation
		r.mu.Unlock()
		if gen != current {
			return Result{}, fmt.Errorf("script run superseded by a newer request")
		}
		return out.result, out.err
	case <-timer.C:
		canceled.Store(true)
		return Result{}, fmt.Errorf("script run timed out after %s", EvalTimeout)
	}
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (r *Runner) evaluate(source string, canceled *atomic.Bool) Result {
	if strings.TrimSpace(source) == "" {
		return Result{}
	}

	// Sandbox mode keeps user scripts away from the filesystem and
	// syscalls; the only effects available are the registered builtins.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, r.eng, canceled)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return Result{Errors: parseZygoError(err)}
	}
	val, err := env.Run()
	if err != nil {
		return Result{Errors: parseZygoError(err)}
	}
	res := Result{}
	if s, ok := val.(*zygo.SexpStr); ok {
		res.Value = s.S
	}
	return res
}

var (
	linePattern      = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)
	linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)
)

// parseZygoError converts a zygomys error into EvalError values,
// extracting line numbers where the message carries them.
func parseZygoError(err error) []EvalError {
	msg := err.Error()
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
