// Package js runs scripts against a document. It uses the goja JavaScript
// engine and exposes the component facade as the global HtmlElement.
package js

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/htmlkit/component"
	"github.com/chrisuehlinger/htmlkit/dom"
	"github.com/chrisuehlinger/htmlkit/html"
	"github.com/chrisuehlinger/htmlkit/logging"
)

// Runtime wraps a goja runtime bound to one document.
//
// Execute, ExecuteScript and ProcessTimers hold the runtime lock while
// scripts run. Listeners registered from scripts run on whichever goroutine
// dispatches the event, so Go code must not dispatch events into a document
// while another goroutine is executing scripts on the same Runtime.
type Runtime struct {
	vm     *goja.Runtime
	doc    *dom.Document
	binder *binder
	timers *timerManager
	log    *zap.Logger

	mu      sync.Mutex
	errMu   sync.Mutex
	errors  []error
	onError func(error)
}

// NewRuntime creates a runtime for doc with the HtmlElement API installed.
func NewRuntime(doc *dom.Document) *Runtime {
	r := &Runtime{
		vm:     goja.New(),
		doc:    doc,
		timers: newTimerManager(),
		log:    logging.L().Named("js"),
	}
	r.binder = newBinder(r)

	r.setupConsole()
	r.setupTimers()
	r.setupHtmlElement()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Document returns the document scripts operate on.
func (r *Runtime) Document() *dom.Document {
	return r.doc
}

// SetOnError sets a callback for script errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	r.onError = handler
}

// Set defines a global. Elements are bound to their script objects.
func (r *Runtime) Set(name string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := value.(*component.Element); ok {
		return r.vm.Set(name, r.binder.bind(e))
	}
	return r.vm.Set(name, value)
}

// Bind returns the script object for e. Binding the same node twice yields
// the same object.
func (r *Runtime) Bind(e *component.Element) goja.Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.binder.bind(e)
}

// Element returns the facade behind a script object, or nil.
func (r *Runtime) Element(v goja.Value) *component.Element {
	return unwrap(v)
}

// Execute runs code and returns the completion value.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.recordError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

// ExecuteScript compiles and runs code named src. Scripts run in sloppy mode
// unless they opt into strict mode.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script compilation panic in %s: %v", src, p)
			r.recordError(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.recordError(err)
		return err
	}
	if _, err = r.vm.RunProgram(program); err != nil {
		r.recordError(err)
	}
	return err
}

// RunInlineScripts executes every inline script of the document in order.
// A failing script does not stop the ones after it; the first error is
// returned.
func (r *Runtime) RunInlineScripts() error {
	var first error
	for i, code := range html.InlineScripts(r.doc) {
		if err := r.ExecuteScript(code, fmt.Sprintf("inline-script-%d", i)); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Errors returns every error recorded so far.
func (r *Runtime) Errors() []error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	r.errors = r.errors[:0]
}

func (r *Runtime) recordError(err error) {
	r.errMu.Lock()
	r.errors = append(r.errors, err)
	handler := r.onError
	r.errMu.Unlock()

	r.log.Warn("Script error.", zap.Error(err))
	if handler != nil {
		handler(err)
	}
}

// ProcessTimers runs every timer that is due.
func (r *Runtime) ProcessTimers() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timers.process(r)
}

// HasPendingWork reports whether timers are waiting.
func (r *Runtime) HasPendingWork() bool {
	return r.timers.hasPending()
}

// Settle runs timers until none are pending or ctx is done.
func (r *Runtime) Settle(ctx context.Context) error {
	for {
		r.ProcessTimers()
		if !r.HasPendingWork() {
			return nil
		}
		wait := time.NewTimer(r.timers.untilNext())
		select {
		case <-ctx.Done():
			wait.Stop()
			return ctx.Err()
		case <-wait.C:
		}
	}
}

// setupConsole routes console output to the logger.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	levels := map[string]func(string, ...zap.Field){
		"log":   r.log.Info,
		"info":  r.log.Info,
		"warn":  r.log.Warn,
		"error": r.log.Error,
		"debug": r.log.Debug,
	}
	for name, logFn := range levels {
		console.Set(name, func(call goja.FunctionCall) goja.Value {
			logFn("console."+name, zap.String("message", formatArgs(call.Arguments)))
			return goja.Undefined()
		})
	}

	console.Set("assert", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || !call.Arguments[0].ToBoolean() {
			msg := "Assertion failed"
			if len(call.Arguments) > 1 {
				msg = formatArgs(call.Arguments[1:])
			}
			r.log.Error("console.assert", zap.String("message", msg))
		}
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

// setupTimers creates setTimeout, setInterval, clearTimeout, clearInterval.
func (r *Runtime) setupTimers() {
	schedule := func(repeat bool) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			callback, ok := goja.AssertFunction(call.Argument(0))
			if !ok {
				return goja.Undefined()
			}
			delay := max(call.Argument(1).ToInteger(), 0)
			var args []goja.Value
			if len(call.Arguments) > 2 {
				args = call.Arguments[2:]
			}
			d := time.Duration(delay) * time.Millisecond
			if repeat {
				return r.vm.ToValue(r.timers.setInterval(callback, max(d, minInterval), args))
			}
			return r.vm.ToValue(r.timers.setTimeout(callback, d, args))
		}
	}
	clearTimer := func(call goja.FunctionCall) goja.Value {
		r.timers.clearTimer(int(call.Argument(0).ToInteger()))
		return goja.Undefined()
	}

	r.vm.Set("setTimeout", schedule(false))
	r.vm.Set("setInterval", schedule(true))
	r.vm.Set("clearTimeout", clearTimer)
	r.vm.Set("clearInterval", clearTimer)
}

// formatArgs formats console arguments the way browsers print them.
func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatValue(arg)
	}
	return strings.Join(parts, " ")
}

// formatValue formats a single value for output.
func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
