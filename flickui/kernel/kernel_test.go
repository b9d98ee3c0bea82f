package kernel

import (
	"bytes"
	"testing"
	"time"
)

type taskFunc func(*Context)

func (f taskFunc) Run(ctx *Context) { f(ctx) }

func TestSendRecvRoundTrip(t *testing.T) {
	k := New()
	dst := k.NewEndpoint(RightSend | RightRecv)
	src := k.NewEndpoint(RightSend | RightRecv)
	xfer := k.NewEndpoint(RightRecv)

	ctx := &Context{k: k, taskID: 1}
	if !ctx.SendCap(src, dst.Restrict(RightSend), 7, []byte("hello"), xfer) {
		t.Fatal("expected send to succeed")
	}

	msg, ok := ctx.Recv(dst.Restrict(RightRecv))
	if !ok {
		t.Fatal("expected message")
	}
	if msg.Kind != 7 {
		t.Fatalf("expected kind 7, got %d", msg.Kind)
	}
	if !bytes.Equal(msg.Payload(), []byte("hello")) {
		t.Fatalf("expected payload %q, got %q", "hello", msg.Payload())
	}
	if msg.From != src.ep {
		t.Fatalf("expected from %d, got %d", src.ep, msg.From)
	}
	if !msg.Cap.Valid() || msg.Cap.ep != xfer.ep {
		t.Fatal("expected transferred capability to survive the round trip")
	}
}

func TestRestrictReducesRights(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)

	sendOnly := cap.Restrict(RightSend)
	if !sendOnly.Valid() || !sendOnly.canSend() || sendOnly.canRecv() {
		t.Fatal("expected send-only capability")
	}
	if got := sendOnly.Restrict(RightRecv); got.Valid() {
		t.Fatal("expected restricting away all rights to invalidate")
	}
	if got := (Capability{}).Restrict(RightSend); got.Valid() {
		t.Fatal("expected restricting an invalid capability to stay invalid")
	}
}

func TestSendRequiresRights(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}

	if res := ctx.SendToCapResult(cap.Restrict(RightRecv), 1, nil, Capability{}); res != SendErrToNoSendRight {
		t.Fatalf("expected SendErrToNoSendRight, got %s", res)
	}
	if res := ctx.SendToCapResult(Capability{}, 1, nil, Capability{}); res != SendErrInvalidToCap {
		t.Fatalf("expected SendErrInvalidToCap, got %s", res)
	}
	if res := ctx.SendCapResult(Capability{}, cap, 1, nil, Capability{}); res != SendErrInvalidFromCap {
		t.Fatalf("expected SendErrInvalidFromCap, got %s", res)
	}
	from := cap.Restrict(RightRecv)
	if res := ctx.SendCapResult(from, cap, 1, nil, Capability{}); res != SendErrFromNoSendRight {
		t.Fatalf("expected SendErrFromNoSendRight, got %s", res)
	}
}

func TestMailboxCapacity(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}
	to := cap.Restrict(RightSend)

	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToCapResult(to, 1, nil, Capability{}); res != SendOK {
			t.Fatalf("send %d: expected SendOK, got %s", i, res)
		}
	}
	if res := ctx.SendToCapResult(to, 1, nil, Capability{}); res != SendErrQueueFull {
		t.Fatalf("expected SendErrQueueFull, got %s", res)
	}

	if _, ok := ctx.TryRecv(cap.Restrict(RightRecv)); !ok {
		t.Fatal("expected a queued message")
	}
	if res := ctx.SendToCapResult(to, 1, nil, Capability{}); res != SendOK {
		t.Fatalf("expected SendOK after drain, got %s", res)
	}
}

func TestSendPayloadTooLarge(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}

	big := make([]byte, MaxMessageBytes+1)
	if res := ctx.SendToCapResult(cap.Restrict(RightSend), 1, big, Capability{}); res != SendErrPayloadTooLarge {
		t.Fatalf("expected SendErrPayloadTooLarge, got %s", res)
	}
}

func TestTickToIsMonotonic(t *testing.T) {
	k := New()
	ctx := &Context{k: k, taskID: 1}

	k.TickTo(5)
	k.TickTo(3)
	if got := ctx.NowTick(); got != 5 {
		t.Fatalf("expected tick 5, got %d", got)
	}
}

func TestWaitTickWakesOnAdvance(t *testing.T) {
	k := New()
	ctx := &Context{k: k, taskID: 1}

	got := make(chan uint64, 1)
	go func() {
		got <- ctx.WaitTick(0)
	}()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for i := uint64(1); ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			k.TickTo(i)
			time.Sleep(1 * time.Millisecond)
		}
	}()

	select {
	case seq := <-got:
		if seq == 0 {
			t.Fatal("expected a positive tick")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for tick")
	}
}

func TestCloseWakesReceivers(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}

	done := make(chan bool, 1)
	go func() {
		_, ok := ctx.Recv(cap.Restrict(RightRecv))
		done <- ok
	}()

	k.Close()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("expected Recv to fail after Close")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for receiver to wake")
	}

	if res := ctx.SendToCapResult(cap.Restrict(RightSend), 1, nil, Capability{}); res != SendErrNoEndpoint {
		t.Fatalf("expected SendErrNoEndpoint after Close, got %s", res)
	}
	if cap := k.NewEndpoint(RightSend); cap.Valid() {
		t.Fatal("expected NewEndpoint to fail after Close")
	}
}

func TestAddTaskRunsTask(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)

	k.AddTask(taskFunc(func(ctx *Context) {
		ctx.SendTo(cap.Restrict(RightSend), 42, []byte("up"))
	}))

	ctx := &Context{k: k, taskID: 0}
	ch, ok := ctx.RecvChan(cap.Restrict(RightRecv))
	if !ok {
		t.Fatal("expected recv channel")
	}
	select {
	case msg := <-ch:
		if msg.Kind != 42 {
			t.Fatalf("expected kind 42, got %d", msg.Kind)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for task message")
	}
}

func TestMessagePayloadClampsLen(t *testing.T) {
	var msg Message
	msg.Len = MaxMessageBytes + 10
	if got := len(msg.Payload()); got != MaxMessageBytes {
		t.Fatalf("expected payload length %d, got %d", MaxMessageBytes, got)
	}
}

func fillMailbox(t *testing.T, ctx *Context, to Capability) {
	t.Helper()
	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToCapResult(to, 1, []byte("x"), Capability{}); res != SendOK {
			t.Fatalf("send %d: expected SendOK, got %s", i, res)
		}
	}
}

// pumpTicks advances the kernel clock from a goroutine until stopped.
func pumpTicks(k *Kernel) (stop func()) {
	done := make(chan struct{})
	go func() {
		for i := uint64(1); ; i++ {
			select {
			case <-done:
				return
			default:
			}
			k.TickTo(i)
			time.Sleep(1 * time.Millisecond)
		}
	}()
	return func() { close(done) }
}

func TestSendRetryZeroLimitDoesNotBlock(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}
	to := cap.Restrict(RightSend)

	fillMailbox(t, ctx, to)
	if res := ctx.SendToCapRetry(to, 1, []byte("y"), Capability{}, 0); res != SendErrQueueFull {
		t.Fatalf("expected SendErrQueueFull, got %s", res)
	}
}

func TestSendRetrySucceedsAfterDrain(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}
	to := cap.Restrict(RightSend)

	ch, ok := ctx.RecvChan(cap.Restrict(RightRecv))
	if !ok {
		t.Fatal("expected recv channel")
	}
	fillMailbox(t, ctx, to)

	got := make(chan SendResult, 1)
	go func() {
		got <- ctx.SendToCapRetry(to, 1, []byte("y"), Capability{}, 5)
	}()

	<-ch
	stop := pumpTicks(k)
	defer stop()

	select {
	case res := <-got:
		if res != SendOK {
			t.Fatalf("expected SendOK after drain, got %s", res)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for retried send")
	}
}

func TestSendRetryGivesUpAtLimit(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}
	to := cap.Restrict(RightSend)

	fillMailbox(t, ctx, to)

	got := make(chan SendResult, 1)
	go func() {
		got <- ctx.SendToCapRetry(to, 1, []byte("y"), Capability{}, 1)
	}()

	stop := pumpTicks(k)
	defer stop()

	select {
	case res := <-got:
		if res != SendErrQueueFull {
			t.Fatalf("expected SendErrQueueFull, got %s", res)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for retried send")
	}
}

func TestTaskPanicIsTrapped(t *testing.T) {
	infoCh := make(chan PanicInfo, 1)
	SetPanicHandler(func(info PanicInfo) {
		infoCh <- info
	})

	k := New()
	k.AddTask(taskFunc(func(ctx *Context) {
		panic("boom")
	}))

	select {
	case info := <-infoCh:
		if info.Value != "boom" {
			t.Fatalf("expected panic value %q, got %v", "boom", info.Value)
		}
		if len(info.Stack) == 0 {
			t.Fatal("expected a captured stack")
		}
		if !InPanicMode() {
			t.Fatal("expected panic mode after trap")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for panic handler")
	}
}
