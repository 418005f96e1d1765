package timeline

import (
	"fmt"
	"time"

	"github.com/ivlev/tweek/internal/tween"
)

// RequestKind identifies a host request queued on a Context.
type RequestKind int

const (
	// RequestPlay restarts every timeline of a coordinator.
	RequestPlay RequestKind = iota
	// RequestCustom is host-defined and ignored by the engine.
	RequestCustom
)

func (k RequestKind) String() string {
	switch k {
	case RequestPlay:
		return "play"
	case RequestCustom:
		return "custom"
	default:
		return fmt.Sprintf("request(%d)", int(k))
	}
}

// Request is a command from the host to the engine.
type Request struct {
	Kind RequestKind
	Code int
}

// Command is an opaque host-defined code carried through the Context.
type Command int

// Context is the state shared between the engine and the host on every
// update call. Its fields are a stable contract.
type Context struct {
	ElapsedTime time.Duration
	TotalTime   time.Duration
	Events      []tween.Event
	Requests    []Request
	Commands    []Command
	ClickTarget string
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{}
}
