// Package graphics models the narrow request/reply contract between the
// interpreter core and the GTK graphics worker thread (spec.md §5
// "Scheduling model": "the core interacts with it only through a
// request-reply handshake where the caller blocks on an event until the
// graphics worker reports the request is complete"). The worker itself —
// window creation, Cairo drawing, the GTK main loop — is out of scope;
// only the Dispatcher interface and the Request vocabulary it carries are
// implemented here, so a Workspace has somewhere to hold "a graphics
// -context handle" (spec.md §3) without this module depending on GTK.
//
// Grounded on original_source/src/graphics/messaging.rs (the one
// "send_request_to_worker, block on an Event" chokepoint every graphics
// operation funnels through) and worker_thread.rs/actions.rs (the request
// vocabulary: Prepare, Clear, SetPoint, Vector, SetLineWidth, Print,
// Close). The original's std::sync::mpsc channel + a hand-rolled Event
// condvar become an unbuffered Go channel plus a per-call completion
// channel that Complete closes — the teacher has no comparable worker-thread
// contract to generalize from (internal/interp/ffi_callback.go is a
// same-thread Go-calls-DWScript callback, not a cross-thread handshake),
// so this is ported directly from the original's own shape.
package graphics

import (
	"sync"

	"github.com/jeffreyeast/go-ppl/internal/pplerr"
)

// Request is one unit of graphics work the worker thread executes.
// Concrete types are plain data, mirroring original_source's per-action
// structs (Prepare, Clear, SetPoint, ...).
type Request interface {
	requestMarker()
}

type baseRequest struct{}

func (baseRequest) requestMarker() {}

// Prepare creates the application window (original_source's
// actions/prepare.rs).
type Prepare struct {
	baseRequest
	WindowWidth  int32
	WindowHeight int32
	Title        string
}

// Clear erases the window contents (actions/clear.rs).
type Clear struct{ baseRequest }

// SetPoint moves the current drawing cursor without drawing
// (actions/setpoint.rs).
type SetPoint struct {
	baseRequest
	X, Y int32
}

// LineStyle selects solid vs dotted rendering for a Vector request.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDotted
)

// Vector draws a line from the current cursor by (DX, DY)
// (actions/vector.rs's Vector::as_solid/as_dotted).
type Vector struct {
	baseRequest
	DX, DY int32
	Style  LineStyle
}

// SetLineWidth changes the pen width, in pixels (actions/setlinewidth.rs).
type SetLineWidth struct {
	baseRequest
	Width int32
}

// Print draws text (or, for the single-character string ".", a dot) at
// the current cursor (actions/print.rs).
type Print struct {
	baseRequest
	Text string
}

// Close tears down the application window (actions/close.rs).
type Close struct{ baseRequest }

// Dispatcher is the one chokepoint every graphics operation funnels
// through: send a request, block until the worker reports it complete
// (original_source's GraphicsContext::send_request_to_worker).
type Dispatcher interface {
	Send(req Request) error
}

// Context is the real channel-backed Dispatcher: Send enqueues a request
// and blocks on a per-call completion signal; a worker goroutine (not
// provided by this package — GTK/Cairo rendering is out of scope) drains
// Requests() and calls Complete() once each is handled.
type Context struct {
	requests chan Request
	mu       sync.Mutex
	pending  chan struct{}
	closed   bool
}

// NewContext creates a Context ready to accept Send calls once a worker
// is draining Requests().
func NewContext() *Context {
	return &Context{requests: make(chan Request)}
}

// Send implements Dispatcher: it blocks until the worker signals
// completion via Complete, exactly as original_source's
// send_request_to_worker blocks on its Event (spec.md §5's
// request-reply handshake).
func (c *Context) Send(req Request) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return pplerr.New(pplerr.IO, "graphics window is closed")
	}
	done := make(chan struct{})
	c.pending = done
	c.mu.Unlock()

	c.requests <- req
	<-done
	return nil
}

// Requests returns the channel a worker goroutine receives Request
// values from (original_source's worker_receive_request).
func (c *Context) Requests() <-chan Request {
	return c.requests
}

// Complete signals that the most recently received request finished,
// unblocking the matching Send call (original_source's
// request_complete.signal()).
func (c *Context) Complete() {
	c.mu.Lock()
	pending := c.pending
	c.mu.Unlock()
	if pending != nil {
		close(pending)
	}
}

// Shutdown marks the context closed; any Send issued afterward fails
// instead of blocking. A Send already waiting on the channel or on its
// completion signal is not released.
func (c *Context) Shutdown() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// NoOpDispatcher satisfies every Send immediately without a worker —
// the default for a Workspace created without a graphics window (most
// of the test suite, and any headless `ppl` invocation).
type NoOpDispatcher struct{}

func (NoOpDispatcher) Send(Request) error { return nil }
