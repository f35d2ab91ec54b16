package scripthost

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dop251/goja"

	"kestrel/internal/task"
)

const xhrUserAgent = "kestrel/1.0 (compatible; Go)"

var xhrClient = &http.Client{Timeout: 30 * time.Second}

// registerXHR installs a minimal XMLHttpRequest: open/send/onload/onerror
// only, enough for scripts that fetch JSON or text. The request itself
// runs on its own goroutine (network I/O must not block the task queue's
// owning thread); the response is delivered back as a task so onload
// fires in arrival order relative to everything else queued for this tab.
// Client shape grounded on std/net/net.go's Fetch.
func registerXHR(vm *goja.Runtime, queue *task.Queue) {
	vm.Set("XMLHttpRequest", func(call goja.ConstructorCall) *goja.Object {
		obj := call.This
		req := &xhrState{vm: vm, obj: obj}

		obj.Set("open", func(c goja.FunctionCall) goja.Value {
			if len(c.Arguments) >= 2 {
				req.method = c.Arguments[0].String()
				req.url = c.Arguments[1].String()
			}
			return goja.Undefined()
		})
		obj.Set("setRequestHeader", func(c goja.FunctionCall) goja.Value {
			if len(c.Arguments) >= 2 {
				if req.headers == nil {
					req.headers = make(map[string]string)
				}
				req.headers[c.Arguments[0].String()] = c.Arguments[1].String()
			}
			return goja.Undefined()
		})
		obj.Set("send", func(c goja.FunctionCall) goja.Value {
			body := ""
			if len(c.Arguments) > 0 {
				body = c.Arguments[0].String()
			}
			req.send(queue, body)
			return goja.Undefined()
		})
		obj.Set("readyState", 0)
		obj.Set("status", 0)
		obj.Set("responseText", "")
		return nil
	})
}

type xhrState struct {
	vm      *goja.Runtime
	obj     *goja.Object
	method  string
	url     string
	headers map[string]string
}

func (r *xhrState) send(queue *task.Queue, body string) {
	method := r.method
	if method == "" {
		method = "GET"
	}
	go func() {
		status, text, err := r.do(method, r.url, body)
		queue.Push(task.NewTask(func() {
			r.deliver(status, text, err)
		}))
	}()
}

func (r *xhrState) do(method, url, body string) (int, string, error) {
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	httpReq, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return 0, "", err
	}
	httpReq.Header.Set("User-Agent", xhrUserAgent)
	for k, v := range r.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := xhrClient.Do(httpReq)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", err
	}
	return resp.StatusCode, string(data), nil
}

func (r *xhrState) deliver(status int, text string, err error) {
	r.obj.Set("readyState", 4)
	r.obj.Set("status", status)
	r.obj.Set("responseText", text)

	if err != nil {
		if handler, ok := goja.AssertFunction(r.obj.Get("onerror")); ok {
			handler(r.obj)
		}
		return
	}
	if handler, ok := goja.AssertFunction(r.obj.Get("onload")); ok {
		handler(r.obj)
	}
}
