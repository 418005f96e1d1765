package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/tweek/internal/clock"
	"github.com/ivlev/tweek/internal/prop"
	"github.com/ivlev/tweek/internal/tween"
)

type object struct {
	props map[prop.Kind]prop.Property
}

func newObject(props ...prop.Property) *object {
	o := &object{props: make(map[prop.Kind]prop.Property)}
	for _, p := range props {
		o.props[p.Kind] = p
	}
	return o
}

func (o *object) Apply(p prop.Property) { o.props[p.Kind] = p }

func (o *object) Get(k prop.Kind) prop.Property {
	if p, ok := o.props[k]; ok {
		return p
	}
	return prop.Zero(k)
}

func newClock() *clock.Manual {
	return clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func fade(id string, d time.Duration) *tween.Tween {
	return tween.With(id, newObject(prop.Opacity(0))).To(prop.Opacity(1)).Duration(d).Compile()
}

func alpha(t *testing.T, tl *Timeline, id string) (float64, bool) {
	t.Helper()
	props, ok := tl.GetUpdate(id)
	if !ok {
		return 0, false
	}
	if len(props) != 1 || props[0].Kind != prop.Alpha {
		t.Fatalf("unexpected props for %s: %v", id, props)
	}
	return props[0].X(), true
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New(newClock(), fade("a", time.Second), fade("b", time.Second), fade("a", time.Second))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("New error = %v, want ErrDuplicateID", err)
	}

	tl, err := New(newClock(), fade("a", time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if err := tl.Add(fade("b", time.Second), fade("a", time.Second)); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Add error = %v, want ErrDuplicateID", err)
	}
	if tl.Len() != 1 {
		t.Errorf("failed Add must not add anything, Len = %d", tl.Len())
	}
}

func TestStaggerOffsets(t *testing.T) {
	const (
		n = 5
		d = 800 * time.Millisecond
		s = 150 * time.Millisecond
	)
	var tweens []*tween.Tween
	for i := range n {
		tweens = append(tweens, fade(string(rune('a'+i)), d))
	}
	tl, err := New(newClock(), tweens...)
	if err != nil {
		t.Fatal(err)
	}
	tl.Stagger(s)

	for i, r := range tl.Ranges() {
		if r.Start != time.Duration(i)*s || r.End != time.Duration(i)*s+d {
			t.Errorf("range %d = [%v, %v), want [%v, %v)", i, r.Start, r.End, time.Duration(i)*s, time.Duration(i)*s+d)
		}
	}
	if got, want := tl.TotalTime(), (n-1)*s+d; got != want {
		t.Errorf("TotalTime = %v, want %v", got, want)
	}
}

func TestStaggerAndAlignLastWins(t *testing.T) {
	tl, err := New(newClock(), fade("a", time.Second), fade("b", time.Second))
	if err != nil {
		t.Fatal(err)
	}

	tl.Stagger(300 * time.Millisecond).Align(Sequence)
	if r, _ := tl.Range("b"); r.Start != time.Second {
		t.Errorf("after Align(Sequence) b starts at %v, want 1s", r.Start)
	}
	tl.Align(Sequence).Stagger(300 * time.Millisecond)
	if r, _ := tl.Range("b"); r.Start != 300*time.Millisecond {
		t.Errorf("after Stagger b starts at %v, want 300ms", r.Start)
	}
	tl.Align(Normal)
	if r, _ := tl.Range("b"); r.Start != 0 {
		t.Errorf("after Align(Normal) b starts at %v, want 0", r.Start)
	}
	tl.Align(Start)
	if r, _ := tl.Range("b"); r.Start != 0 {
		t.Errorf("Align(Start) should lay out as normal, b starts at %v", r.Start)
	}
}

func TestSequenceAlign(t *testing.T) {
	clk := newClock()
	tl, err := New(clk, fade("first", time.Second), fade("second", time.Second))
	if err != nil {
		t.Fatal(err)
	}
	tl.Align(Sequence)

	want := []struct{ start, end time.Duration }{{0, time.Second}, {time.Second, 2 * time.Second}}
	for i, r := range tl.Ranges() {
		if r.Start != want[i].start || r.End != want[i].end {
			t.Errorf("range %d = [%v, %v), want [%v, %v)", i, r.Start, r.End, want[i].start, want[i].end)
		}
	}

	ctx := NewContext()
	tl.Play()

	clk.Advance(500 * time.Millisecond)
	tl.Update(ctx)
	if v, ok := alpha(t, tl, "first"); !ok || !near(v, 0.5) {
		t.Errorf("first at 0.5s = %v, %v; want 0.5", v, ok)
	}
	if _, ok := alpha(t, tl, "second"); ok {
		t.Error("second must be dormant at 0.5s")
	}
	if r, _ := tl.Range("second"); r.Active(500 * time.Millisecond) {
		t.Error("second window must not contain 0.5s")
	}

	clk.Advance(time.Second)
	tl.Update(ctx)
	// The end frame is readable on the update that completes the tween.
	if v, ok := alpha(t, tl, "first"); !ok || !near(v, 1) {
		t.Errorf("first at 1.5s = %v, %v; want final value 1", v, ok)
	}
	if v, ok := alpha(t, tl, "second"); !ok || !near(v, 0.5) {
		t.Errorf("second at 1.5s = %v, %v; want 0.5", v, ok)
	}
	if ctx.ElapsedTime != 1500*time.Millisecond || ctx.TotalTime != 2*time.Second {
		t.Errorf("ctx elapsed=%v total=%v", ctx.ElapsedTime, ctx.TotalTime)
	}

	clk.Advance(100 * time.Millisecond)
	tl.Update(ctx)
	if _, ok := alpha(t, tl, "first"); ok {
		t.Error("first must be done at 1.6s")
	}
}

func TestPlayStartsOnlyZeroOffset(t *testing.T) {
	tl, err := New(newClock(), fade("a", time.Second), fade("b", time.Second))
	if err != nil {
		t.Fatal(err)
	}
	tl.Stagger(time.Second)
	tl.Play()

	ra, _ := tl.Range("a")
	rb, _ := tl.Range("b")
	if ra.Tween.State() != tween.Running {
		t.Errorf("a state = %v, want running", ra.Tween.State())
	}
	if rb.Tween.State() != tween.Pending {
		t.Errorf("b state = %v, want pending", rb.Tween.State())
	}
}

func TestUpdateEvents(t *testing.T) {
	clk := newClock()
	tl, err := New(clk, fade("a", time.Second), fade("b", time.Second))
	if err != nil {
		t.Fatal(err)
	}
	tl.Align(Sequence)
	tl.Play()

	var all []tween.Event
	for range 25 {
		clk.Advance(100 * time.Millisecond)
		ctx := NewContext()
		tl.Update(ctx)
		all = append(all, ctx.Events...)
	}

	want := []tween.Event{
		{Kind: tween.Started, ID: "a"},
		{Kind: tween.Finished, ID: "a"},
		{Kind: tween.Started, ID: "b"},
		{Kind: tween.Finished, ID: "b"},
	}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestPastWindowKeepsTicking(t *testing.T) {
	clk := newClock()
	loop := tween.With("loop", newObject(prop.Opacity(0))).
		To(prop.Opacity(1)).Duration(time.Second).
		Repeat(tween.Infinite, 0).
		Compile()
	tl, err := New(clk, loop)
	if err != nil {
		t.Fatal(err)
	}
	tl.Play()

	ctx := NewContext()
	clk.Advance(3250 * time.Millisecond)
	tl.Update(ctx)
	if v, ok := alpha(t, tl, "loop"); !ok || !near(v, 0.25) {
		t.Errorf("loop at 3.25s = %v, %v; want 0.25", v, ok)
	}
	if loop.State() != tween.Running {
		t.Errorf("state = %v, want running", loop.State())
	}
}

func TestLateStartCatchesUp(t *testing.T) {
	clk := newClock()
	tl, err := New(clk, fade("a", time.Second), fade("b", time.Second))
	if err != nil {
		t.Fatal(err)
	}
	tl.Stagger(time.Second)
	tl.Play()

	ctx := NewContext()
	clk.Advance(1250 * time.Millisecond)
	tl.Update(ctx)
	if v, ok := alpha(t, tl, "b"); !ok || !near(v, 0.25) {
		t.Errorf("b at 1.25s = %v, %v; want 0.25", v, ok)
	}
}

func TestPauseDoesNotCountTime(t *testing.T) {
	clk := newClock()
	tl, err := New(clk, fade("a", time.Second))
	if err != nil {
		t.Fatal(err)
	}
	tl.Play()
	ctx := NewContext()

	clk.Advance(300 * time.Millisecond)
	tl.Update(ctx)
	tl.Pause()
	clk.Advance(5 * time.Second)
	tl.Update(ctx)
	if ctx.ElapsedTime != 300*time.Millisecond {
		t.Errorf("elapsed while paused = %v, want 300ms", ctx.ElapsedTime)
	}
	tl.Resume()
	clk.Advance(200 * time.Millisecond)
	tl.Update(ctx)
	if v, ok := alpha(t, tl, "a"); !ok || !near(v, 0.5) {
		t.Errorf("a after resume = %v, %v; want 0.5", v, ok)
	}
}

func TestResetReanchors(t *testing.T) {
	clk := newClock()
	tl, err := New(clk, fade("a", time.Second))
	if err != nil {
		t.Fatal(err)
	}
	tl.Play()
	ctx := NewContext()
	clk.Advance(700 * time.Millisecond)
	tl.Update(ctx)

	tl.Reset()
	r, _ := tl.Range("a")
	if r.Tween.State() != tween.Pending {
		t.Fatalf("state after Reset = %v, want pending", r.Tween.State())
	}
	clk.Advance(100 * time.Millisecond)
	tl.Update(ctx)
	if v, ok := alpha(t, tl, "a"); !ok || !near(v, 0.1) {
		t.Errorf("a after reset = %v, %v; want 0.1", v, ok)
	}
}

func TestStop(t *testing.T) {
	clk := newClock()
	tl, err := New(clk, fade("a", time.Second))
	if err != nil {
		t.Fatal(err)
	}
	tl.Play()
	tl.Stop()
	clk.Advance(500 * time.Millisecond)
	ctx := NewContext()
	tl.Update(ctx)
	if _, ok := tl.GetUpdate("a"); ok {
		t.Error("stopped timeline should not report values")
	}
	if len(ctx.Events) != 0 {
		t.Errorf("stopped timeline emitted %v", ctx.Events)
	}
}

func TestTimelineRepeat(t *testing.T) {
	clk := newClock()
	tl, err := New(clk, fade("a", time.Second))
	if err != nil {
		t.Fatal(err)
	}
	tl.Repeat(1, 500*time.Millisecond)
	tl.Play()

	var events []tween.Event
	step := func(d time.Duration) {
		clk.Advance(d)
		ctx := NewContext()
		tl.Update(ctx)
		events = append(events, ctx.Events...)
	}

	step(1200 * time.Millisecond) // finished, waiting out the delay
	step(400 * time.Millisecond)  // 1.6s: 100ms into the replay
	if tl.Cycle() != 1 {
		t.Fatalf("cycle = %d, want 1", tl.Cycle())
	}
	if v, ok := alpha(t, tl, "a"); !ok || !near(v, 0.1) {
		t.Errorf("a in replay = %v, %v; want 0.1", v, ok)
	}

	step(5 * time.Second)
	if tl.Cycle() != 1 {
		t.Errorf("cycle = %d after repeats ran out, want 1", tl.Cycle())
	}

	finished := 0
	for _, e := range events {
		if e.Kind == tween.Finished {
			finished++
		}
	}
	if finished != 2 {
		t.Errorf("finished events = %d, want 2", finished)
	}
}

func TestEmptyTimeline(t *testing.T) {
	tl, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if tl.TotalTime() != 0 {
		t.Errorf("TotalTime = %v, want 0", tl.TotalTime())
	}
	tl.Play()
	tl.Update(nil)
	if _, ok := tl.GetUpdate("missing"); ok {
		t.Error("GetUpdate on empty timeline reported values")
	}
}

func TestParseAlign(t *testing.T) {
	for _, a := range []Align{Normal, Sequence, Start} {
		got, err := ParseAlign(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAlign(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAlign("diagonal"); err == nil {
		t.Error("expected error for unknown align")
	}
}

func TestRangeEndSaturates(t *testing.T) {
	long := tween.With("long", newObject(prop.Opacity(0))).
		To(prop.Opacity(1)).Duration(time.Second).
		Repeat(10_000_000_000, 0).
		Compile()
	tl, err := New(newClock(), fade("a", time.Second), long)
	if err != nil {
		t.Fatal(err)
	}
	tl.Stagger(time.Hour)

	r, _ := tl.Range("long")
	if r.Start != time.Hour || r.End != clock.Forever {
		t.Errorf("range = [%v, %v), want [1h, clock.Forever)", r.Start, r.End)
	}
	if tl.TotalTime() != clock.Forever {
		t.Errorf("TotalTime = %v, want clock.Forever", tl.TotalTime())
	}

	tl.Align(Sequence)
	if r, _ := tl.Range("long"); r.Start != time.Second || r.End != clock.Forever {
		t.Errorf("sequence range = [%v, %v), want [1s, clock.Forever)", r.Start, r.End)
	}
}
