package kernel

import "sync"

const (
	maxTasks     = 32
	maxEndpoints = 32
	mailboxSlots = 8
)

type TaskID uint8

// Rights define which operations are allowed for a capability.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint identifies an IPC destination.
type Endpoint uint8

// Capability grants access to an IPC endpoint.
//
// It is opaque by construction (no exported fields) and may be transferred via IPC.
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) valid() bool {
	return c.rights != 0
}

func (c Capability) Valid() bool { return c.valid() }

func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict returns a capability with a reduced set of rights.
func (c Capability) Restrict(rights Rights) Capability {
	if !c.valid() {
		return Capability{}
	}
	r := c.rights & rights
	if r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: r}
}

// MaxMessageBytes is the maximum payload size for IPC messages.
//
// Larger transfers should use shared buffers + notify protocols, not mailbox copies.
const MaxMessageBytes = 128

// Message is a fixed-size IPC envelope.
type Message struct {
	From Endpoint
	To   Endpoint
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
	Cap  Capability
}

// Payload returns the valid portion of the message data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > MaxMessageBytes {
		n = MaxMessageBytes
	}
	return m.Data[:n]
}

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidFromCap
	SendErrInvalidToCap
	SendErrFromNoSendRight
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrInvalidFromCap:
		return "invalid from capability"
	case SendErrInvalidToCap:
		return "invalid to capability"
	case SendErrFromNoSendRight:
		return "from capability has no send right"
	case SendErrToNoSendRight:
		return "to capability has no send right"
	case SendErrNoEndpoint:
		return "no such endpoint"
	case SendErrPayloadTooLarge:
		return "payload too large"
	case SendErrQueueFull:
		return "queue full"
	default:
		return "unknown"
	}
}

// Task is a cooperative unit of execution. Run is called once on its own
// goroutine and blocks in Recv/WaitTick between events.
type Task interface {
	Run(*Context)
}

type endpointState struct {
	ch chan Message
}

// Kernel routes IPC between tasks and distributes the tick stream.
//
// Each endpoint is a fixed-capacity mailbox; sends never block, receives
// suspend the task until a message or endpoint close.
type Kernel struct {
	mu            sync.Mutex
	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint
	taskCount     TaskID

	tickSeq uint64
	tickCh  chan struct{}
	closed  bool
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{tickCh: make(chan struct{})}
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed || k.endpointCount >= maxEndpoints {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	k.endpoints[ep].ch = make(chan Message, mailboxSlots)
	return Capability{ep: ep, rights: rights}
}

// AddTask registers a task and starts it on its own goroutine.
//
// A panicking task trips the kernel panic handler instead of crashing the
// process.
func (k *Kernel) AddTask(t Task) TaskID {
	if t == nil {
		return 0
	}
	k.mu.Lock()
	if k.closed || k.taskCount >= maxTasks {
		k.mu.Unlock()
		return 0
	}
	id := k.taskCount
	k.taskCount++
	k.mu.Unlock()

	go func() {
		defer func() {
			if v := recover(); v != nil {
				triggerPanic(PanicInfo{TaskID: id, Value: v})
			}
		}()
		t.Run(&Context{k: k, taskID: id})
	}()
	return id
}

// TickTo advances the tick sequence and wakes tasks blocked in WaitTick.
// Non-monotonic updates are ignored.
func (k *Kernel) TickTo(seq uint64) {
	k.mu.Lock()
	if k.closed || seq <= k.tickSeq {
		k.mu.Unlock()
		return
	}
	k.tickSeq = seq
	ch := k.tickCh
	k.tickCh = make(chan struct{})
	k.mu.Unlock()
	close(ch)
}

// Close shuts the kernel down: endpoints close (receivers drain and see
// channel close), blocked tick waiters wake, further sends fail.
func (k *Kernel) Close() {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return
	}
	k.closed = true
	for i := Endpoint(0); i < k.endpointCount; i++ {
		if ch := k.endpoints[i].ch; ch != nil {
			close(ch)
		}
	}
	ch := k.tickCh
	k.tickCh = make(chan struct{})
	k.mu.Unlock()
	close(ch)
}

func (k *Kernel) nowTick() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tickSeq
}

// waitTick blocks until the tick sequence passes after. On a closed kernel
// it returns the current sequence immediately.
func (k *Kernel) waitTick(after uint64) uint64 {
	for {
		k.mu.Lock()
		if k.tickSeq > after || k.closed {
			seq := k.tickSeq
			k.mu.Unlock()
			return seq
		}
		ch := k.tickCh
		k.mu.Unlock()
		<-ch
	}
}

func (k *Kernel) send(from, to Endpoint, kind uint16, payload []byte, xfer Capability) (res SendResult) {
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}

	k.mu.Lock()
	if to >= k.endpointCount {
		k.mu.Unlock()
		return SendErrNoEndpoint
	}
	ch := k.endpoints[to].ch
	k.mu.Unlock()
	if ch == nil {
		return SendErrNoEndpoint
	}

	var msg Message
	msg.From = from
	msg.To = to
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)
	msg.Cap = xfer

	// Sending on a closed endpoint panics; report it as a missing endpoint.
	defer func() {
		if recover() != nil {
			res = SendErrNoEndpoint
		}
	}()

	select {
	case ch <- msg:
		return SendOK
	default:
		return SendErrQueueFull
	}
}
