package wind

// Handler receives a dispatched event.
type Handler func(ev *Event)

// Registration is a live listener on a Bus. Cancel removes it.
type Registration struct {
	bus     *Bus
	target  Target // nil for global listeners
	typ     EventType
	capture bool
	fn      Handler
	dead    bool
}

// Cancel removes the listener. It is safe to call more than once, and
// takes effect immediately, including for a dispatch in progress.
func (r *Registration) Cancel() {
	if r == nil || r.dead {
		return
	}
	r.dead = true
	r.bus.remove(r)
}

// Active reports whether the listener is still registered.
func (r *Registration) Active() bool {
	return r != nil && !r.dead
}

// Bus delivers events to listeners. Listeners are either bound to one
// target or global. Global listeners run in the capture phase (before
// target listeners) or the bubble phase (after).
//
// A Bus is not safe for concurrent use; it is driven from one event loop.
type Bus struct {
	regs []*Registration
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Listen registers fn for events of type typ addressed to target.
func (b *Bus) Listen(target Target, typ EventType, fn Handler) *Registration {
	return b.add(&Registration{target: target, typ: typ, fn: fn})
}

// ListenGlobal registers fn for every event of type typ. With capture
// set, fn runs before any target listener.
func (b *Bus) ListenGlobal(typ EventType, fn Handler, capture bool) *Registration {
	return b.add(&Registration{typ: typ, fn: fn, capture: capture})
}

func (b *Bus) add(r *Registration) *Registration {
	r.bus = b
	b.regs = append(b.regs, r)
	return r
}

func (b *Bus) remove(r *Registration) {
	for i, x := range b.regs {
		if x == r {
			copy(b.regs[i:], b.regs[i+1:])
			b.regs[len(b.regs)-1] = nil
			b.regs = b.regs[:len(b.regs)-1]
			return
		}
	}
}

// Len returns the number of live registrations.
func (b *Bus) Len() int {
	return len(b.regs)
}

// Dispatch delivers ev and reports whether a listener prevented the
// host's default behaviour.
func (b *Bus) Dispatch(ev *Event) bool {
	snapshot := make([]*Registration, len(b.regs))
	copy(snapshot, b.regs)

	run := func(match func(r *Registration) bool) {
		for _, r := range snapshot {
			if r.dead || r.typ != ev.Type || !match(r) {
				continue
			}
			r.fn(ev)
		}
	}

	run(func(r *Registration) bool { return r.target == nil && r.capture })
	if ev.Target != nil {
		run(func(r *Registration) bool { return r.target != nil && r.target == ev.Target })
	}
	run(func(r *Registration) bool { return r.target == nil && !r.capture })
	return ev.DefaultPrevented()
}
