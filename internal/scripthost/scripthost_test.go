package scripthost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kestrel/internal/domtree"
	"kestrel/internal/task"
)

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	log, err := zap.NewDevelopment()
	require.NoError(t, err)
	return log.Sugar()
}

func buildTestDoc() *domtree.Document {
	root := domtree.NewElement("document")
	body := domtree.NewElement("body")
	root.AddChild(body)

	div := domtree.NewElement("div")
	div.SetAttribute("id", "target")
	div.SetAttribute("class", "box highlighted")
	body.AddChild(div)

	p := domtree.NewElement("p")
	p.SetAttribute("class", "box")
	body.AddChild(p)
	p.AddChild(domtree.NewText("hello"))

	return &domtree.Document{Root: root}
}

func noopHooks() Hooks {
	return Hooks{
		SetNeedsRender:           func() {},
		SetNeedsAnimationFrame:   func() {},
		RegisterAnimationFrameCB: func(func()) {},
	}
}

// runOnce drains exactly one task from the queue synchronously, enough to
// execute a script pushed via RunScript without starting a full Run loop.
func runOnce(t *testing.T, q *task.Queue) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		tk, ok := q.Pop()
		if ok {
			tk.Fn()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for task")
	}
}

func TestRunScript_GetElementByIdReadsAttributes(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()
	h := New(doc, q, noopHooks(), testLogger(t))

	var result string
	h.Runtime().Set("record", func(s string) { result = s })
	h.RunScript(`record(document.getElementById("target").className)`)
	runOnce(t, q)

	assert.Equal(t, "box highlighted", result)
}

func TestRunScript_QuerySelectorAllFindsByClass(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()
	h := New(doc, q, noopHooks(), testLogger(t))

	var count int64
	h.Runtime().Set("record", func(n int64) { count = n })
	h.RunScript(`record(document.querySelectorAll(".box").length)`)
	runOnce(t, q)

	assert.EqualValues(t, 2, count)
}

func TestRunScript_SetAttributeAndTextContentMutateNode(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()
	h := New(doc, q, noopHooks(), testLogger(t))

	h.RunScript(`
		var el = document.getElementById("target");
		el.setAttribute("data-seen", "yes");
		el.textContent = "replaced";
	`)
	runOnce(t, q)

	target := domtree.ElementByID(doc.Root, "target")
	require.NotNil(t, target)
	v, ok := target.GetAttribute("data-seen")
	assert.True(t, ok)
	assert.Equal(t, "yes", v)
	assert.Equal(t, "replaced", textContent(target))
}

func TestRunScript_ClassListAddRemoveToggle(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()
	h := New(doc, q, noopHooks(), testLogger(t))

	h.RunScript(`
		var el = document.getElementById("target");
		el.classList.remove("highlighted");
		el.classList.add("active");
	`)
	runOnce(t, q)

	target := domtree.ElementByID(doc.Root, "target")
	assert.False(t, target.HasClass("highlighted"))
	assert.True(t, target.HasClass("active"))
	assert.True(t, target.HasClass("box"))
}

func TestRunScript_AppendChildCreatesNewElement(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()
	h := New(doc, q, noopHooks(), testLogger(t))

	h.RunScript(`
		var span = document.createElement("span");
		span.id = "created";
		document.getElementById("target").appendChild(span);
	`)
	runOnce(t, q)

	created := domtree.ElementByID(doc.Root, "created")
	require.NotNil(t, created)
	assert.Equal(t, "target", created.Parent.Attributes["id"])
}

func TestRunScript_SetTimeoutRunsAsLaterTask(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()
	h := New(doc, q, noopHooks(), testLogger(t))

	var fired bool
	h.Runtime().Set("mark", func() { fired = true })
	h.RunScript(`setTimeout(function() { mark(); }, 1)`)
	runOnce(t, q) // runs the RunScript task, which schedules the timer

	time.Sleep(20 * time.Millisecond)
	runOnce(t, q) // runs the timer's task
	assert.True(t, fired)
}

func TestRunScript_RequestAnimationFrameRegistersCallbackAndFlagsNeeded(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()

	var registered func()
	var flagged bool
	hooks := Hooks{
		SetNeedsRender:         func() {},
		SetNeedsAnimationFrame: func() { flagged = true },
		RegisterAnimationFrameCB: func(cb func()) {
			registered = cb
		},
	}
	h := New(doc, q, hooks, testLogger(t))

	var ran bool
	h.Runtime().Set("mark", func() { ran = true })
	h.RunScript(`requestAnimationFrame(function() { mark(); })`)
	runOnce(t, q)

	require.NotNil(t, registered)
	assert.True(t, flagged)
	registered()
	assert.True(t, ran)
}

func TestRunScript_StyleSetAndReadRoundTrips(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()
	h := New(doc, q, noopHooks(), testLogger(t))

	var width string
	h.Runtime().Set("record", func(s string) { width = s })
	h.RunScript(`
		var el = document.getElementById("target");
		el.style.width = "10px";
		record(el.style.width);
	`)
	runOnce(t, q)

	assert.Equal(t, "10px", width)
	target := domtree.ElementByID(doc.Root, "target")
	raw, ok := target.GetAttribute("style")
	require.True(t, ok)
	assert.Contains(t, raw, "width: 10px")
}

func TestRunScript_IdentityPreservedAcrossRepeatedLookups(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()
	h := New(doc, q, noopHooks(), testLogger(t))

	var same bool
	h.Runtime().Set("record", func(b bool) { same = b })
	h.RunScript(`
		var a = document.getElementById("target");
		var b = document.getElementById("target");
		record(a === b);
	`)
	runOnce(t, q)

	assert.True(t, same)
}

func TestRunScript_MarkDirtyFiresOnSetAttributeTextContentAndStyle(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()

	var dirty []*domtree.Node
	hooks := noopHooks()
	hooks.MarkDirty = func(n *domtree.Node) { dirty = append(dirty, n) }
	h := New(doc, q, hooks, testLogger(t))

	h.RunScript(`
		var el = document.getElementById("target");
		el.setAttribute("data-x", "1");
		el.textContent = "changed";
		el.classList.add("flagged");
		el.style.color = "red";
	`)
	runOnce(t, q)

	target := domtree.ElementByID(doc.Root, "target")
	require.NotNil(t, target)
	assert.GreaterOrEqual(t, len(dirty), 4)
	for _, n := range dirty {
		assert.Equal(t, target, n)
	}
}

func TestRunScript_MarkDirtyFiresOnAppendChildWithParentNode(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()

	var dirty []*domtree.Node
	hooks := noopHooks()
	hooks.MarkDirty = func(n *domtree.Node) { dirty = append(dirty, n) }
	h := New(doc, q, hooks, testLogger(t))

	h.RunScript(`
		var span = document.createElement("span");
		document.getElementById("target").appendChild(span);
	`)
	runOnce(t, q)

	target := domtree.ElementByID(doc.Root, "target")
	require.NotNil(t, target)
	require.NotEmpty(t, dirty)
	assert.Equal(t, target, dirty[len(dirty)-1])
}

func TestRunScript_ConsoleLogDoesNotPanic(t *testing.T) {
	doc := buildTestDoc()
	q := task.NewQueue()
	h := New(doc, q, noopHooks(), testLogger(t))

	h.RunScript(`console.log("hello", 1, true)`)
	runOnce(t, q)
}
