package effects

import (
	"fmt"
	"sort"
)

var registry = map[string]Effect{
	"fade_in":  Func(FadeIn),
	"fade_out": Func(FadeOut),
	"slide_in": Func(SlideIn),
	"pulse":    Func(Pulse),
	"spin":     Func(Spin),
	"blink":    Func(Blink),
}

// New returns the preset registered under name.
func New(name string) (Effect, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown effect: %s", name)
	}
	return e, nil
}

// Names returns the registered preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
