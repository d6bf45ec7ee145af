package js

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/chrisuehlinger/htmlkit/dom"
	"github.com/chrisuehlinger/htmlkit/html"
)

func TestRuntimeBasic(t *testing.T) {
	r := NewRuntime(dom.NewHTMLDocument())

	result, err := r.Execute("1 + 2")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 3 {
		t.Errorf("Expected 3, got %v", result.ToInteger())
	}
}

func TestRuntimeVariables(t *testing.T) {
	r := NewRuntime(dom.NewHTMLDocument())

	if _, err := r.Execute("var x = 42;"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	result, err := r.Execute("x")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 42 {
		t.Errorf("Expected 42, got %v", result.ToInteger())
	}
}

func TestRuntimeConsole(t *testing.T) {
	r := NewRuntime(dom.NewHTMLDocument())

	_, err := r.Execute(`
		console.log("test message", 1, null, undefined);
		console.warn("warning");
		console.error("error");
		console.info("info");
		console.debug("debug");
		console.assert(false, "broken");
	`)
	if err != nil {
		t.Fatalf("console methods failed: %v", err)
	}
}

func TestRuntimeErrors(t *testing.T) {
	r := NewRuntime(dom.NewHTMLDocument())
	var seen []error
	r.SetOnError(func(err error) { seen = append(seen, err) })

	if _, err := r.Execute("throw new Error('boom')"); err == nil {
		t.Fatal("Expected an error from throw")
	}
	if err := r.ExecuteScript("var = ;", "broken.js"); err == nil {
		t.Fatal("Expected a syntax error")
	}

	errs := r.Errors()
	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d", len(errs))
	}
	if !strings.Contains(errs[0].Error(), "boom") {
		t.Errorf("Expected first error to mention boom, got %v", errs[0])
	}
	if len(seen) != 2 {
		t.Errorf("Expected the error handler to see 2 errors, got %d", len(seen))
	}

	r.ClearErrors()
	if len(r.Errors()) != 0 {
		t.Errorf("Expected no errors after ClearErrors")
	}
}

func TestRuntimeSetTimeout(t *testing.T) {
	r := NewRuntime(dom.NewHTMLDocument())

	_, err := r.Execute(`
		var order = [];
		setTimeout(function(tag) { order.push(tag); }, 10, "late");
		setTimeout(function() { order.push("early"); }, 0);
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	r.ProcessTimers()

	result, err := r.Execute("order.join(',')")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.String() != "early,late" {
		t.Errorf("Expected 'early,late', got %q", result.String())
	}
	if r.HasPendingWork() {
		t.Error("Expected no pending timers")
	}
}

func TestRuntimeClearTimeout(t *testing.T) {
	r := NewRuntime(dom.NewHTMLDocument())

	_, err := r.Execute(`
		var called = false;
		var id = setTimeout(function() { called = true; }, 10);
		clearTimeout(id);
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	r.ProcessTimers()

	result, err := r.Execute("called")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToBoolean() {
		t.Error("setTimeout callback was called after clearTimeout")
	}
}

func TestRuntimeSettle(t *testing.T) {
	r := NewRuntime(dom.NewHTMLDocument())

	_, err := r.Execute(`
		var count = 0;
		var id = setInterval(function() {
			count++;
			if (count === 3) clearInterval(id);
		}, 5);
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Settle(ctx); err != nil {
		t.Fatalf("Settle failed: %v", err)
	}

	result, _ := r.Execute("count")
	if result.ToInteger() != 3 {
		t.Errorf("Expected count 3, got %v", result.ToInteger())
	}
}

func TestRuntimeSettleCanceled(t *testing.T) {
	r := NewRuntime(dom.NewHTMLDocument())
	if _, err := r.Execute(`setInterval(function() {}, 5);`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := r.Settle(ctx); err != context.DeadlineExceeded {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
}

func TestRuntimeTimerError(t *testing.T) {
	r := NewRuntime(dom.NewHTMLDocument())
	if _, err := r.Execute(`setTimeout(function() { throw new Error("in timer"); }, 0);`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	r.ProcessTimers()

	errs := r.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "in timer") {
		t.Errorf("Expected one timer error, got %v", errs)
	}
}

func TestRunInlineScripts(t *testing.T) {
	doc, err := html.Parse(`<!DOCTYPE html><html><head></head><body>
		<ul id="list"></ul>
		<script>HtmlElement.getById("list").addChild({type: "li", value: "one"});</script>
		<script type="text/template">not javascript</script>
		<script>undefinedFunction();</script>
		<script>HtmlElement.getById("list").addChild({type: "li", value: "two"});</script>
	</body></html>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	r := NewRuntime(doc)
	if err := r.RunInlineScripts(); err == nil {
		t.Error("Expected the failing script's error")
	}
	if len(r.Errors()) != 1 {
		t.Errorf("Expected 1 error, got %v", r.Errors())
	}

	list := doc.GetElementById("list")
	if got := list.InnerHTML(); got != "<li>one</li><li>two</li>" {
		t.Errorf("Expected both items, got %q", got)
	}
}
