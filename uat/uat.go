// Package uat mediates between a byte-oriented serial link and
// application code speaking a line-oriented AT-style protocol.
//
// The core is a single dispatcher task (Run) consuming a byte ring
// filled from the port's receive contexts. Complete lines are routed to
// at most one registered handler; unsolicited result codes registered
// with RegisterURC take priority. SendReceive layers a synchronous
// command/response exchange on top of the same dispatch path.
//
// Usage:
//
//	cfg, err := uat.NewConfigBuilder().WithPort(port).Build()
//	if err != nil { return err }
//	h, err := uat.New(cfg)
//	if err != nil { return err }
//
//	go h.Run(ctx)
//
//	buf := make([]byte, 256)
//	n, err := h.SendReceive("ATI", "OK", buf, time.Second)
package uat

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const (
	// How long the dispatcher waits for one line before looping.
	lineReceiveTimeout = time.Second
	// How long dispatch waits for the handler mutex before dropping a
	// line.
	dispatchMutexTimeout = 100 * time.Millisecond
)

// Handle is the dispatcher core. Construct with New; all methods are
// safe for concurrent use. Exactly one goroutine must run Run.
type Handle struct {
	port Port
	cfg  Config

	rx     *ringBuffer
	dmaBuf []byte
	// Offset last forwarded to the ring. The only word shared with the
	// port's receive context.
	dmaLastPos atomic.Uint32

	txDone    token
	srMatched token
	txMu      token
	handlerMu token

	txBuf []byte

	// Guarded by handlerMu.
	handlers []handlerEntry
	sr       srState
}

// srState is the send-receive slot: non-active means no synchronous
// request is outstanding.
type srState struct {
	active bool
	buf    []byte
	pos    int
}

// New initializes the dispatcher core and starts reception on the
// port. The returned Handle is ready for registration and transmit
// calls; lines are only delivered once Run is started.
func New(cfg Config) (*Handle, error) {
	if cfg.port == nil {
		return nil, fmt.Errorf("%w: port is required", ErrInvalidArg)
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	h := &Handle{
		port:      cfg.port,
		cfg:       cfg,
		rx:        newRingBuffer(cfg.rxBufferSize),
		dmaBuf:    make([]byte, cfg.dmaBufferSize),
		txDone:    newSignal(),
		srMatched: newSignal(),
		txMu:      newMutex(),
		handlerMu: newMutex(),
		txBuf:     make([]byte, cfg.txBufferSize),
		handlers:  make([]handlerEntry, 0, cfg.maxHandlers),
	}

	if err := h.port.StartReceive(h.dmaBuf); err != nil {
		return nil, fmt.Errorf("%w: start receive: %v", ErrInitFail, err)
	}
	return h, nil
}

// Run owns the consume loop: frame one line from the byte ring, match
// it against the handler table, invoke the winning callback. It blocks
// until ctx is cancelled and returns ctx.Err(); cancellation is checked
// between line reads.
//
// Run must be called exactly once. Handlers (including the internal
// send-receive callback) execute on this goroutine, so a handler that
// blocks stalls all line delivery.
func (h *Handle) Run(ctx context.Context) error {
	lineBuf := make([]byte, h.cfg.rxBufferSize)
	term := []byte(h.cfg.lineTerminator)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := h.rx.receiveUntil(term, lineBuf, lineReceiveTimeout)
		if n == 0 {
			continue
		}
		h.dispatch(lineBuf[:n])
	}
}

// Reset aborts peripheral I/O, drops any buffered bytes, rewinds the
// receive cursor and restarts reception. The handler table and an
// outstanding send-receive are left alone; a send-receive caller whose
// response was lost times out naturally.
func (h *Handle) Reset() error {
	if h.port == nil {
		return ErrInvalidArg
	}
	_ = h.port.AbortReceive()
	_ = h.port.AbortTransmit()
	h.rx.reset()
	h.dmaLastPos.Store(0)
	if err := h.port.StartReceive(h.dmaBuf); err != nil {
		return fmt.Errorf("%w: restart receive: %v", ErrInitFail, err)
	}
	return nil
}

// IdleHandler forwards the bytes the receive engine has written since
// the last idle event into the byte ring. It is called from the port's
// idle-line context and never blocks.
//
// The cursor positions derive from Port.Remaining: equal positions
// forward nothing, a forward move forwards one slice, a wrap forwards
// the tail and then the head. Returns false when any byte was dropped;
// the cursor still advances, the loss is accepted.
func (h *Handle) IdleHandler() bool {
	if h.port == nil || h.rx == nil || len(h.dmaBuf) == 0 {
		return false
	}
	size := len(h.dmaBuf)
	cur := size - h.port.Remaining()
	if cur < 0 || cur > size {
		return false
	}
	last := int(h.dmaLastPos.Load())
	if cur == last {
		return true
	}

	ok := true
	if cur > last {
		if h.rx.pushFromISR(h.dmaBuf[last:cur]) != cur-last {
			ok = false
		}
	} else {
		if tail := h.dmaBuf[last:]; len(tail) > 0 {
			if h.rx.pushFromISR(tail) != len(tail) {
				ok = false
			}
		}
		if cur > 0 && ok {
			if h.rx.pushFromISR(h.dmaBuf[:cur]) != cur {
				ok = false
			}
		}
	}

	h.dmaLastPos.Store(uint32(cur))
	return ok
}

// TxComplete signals completion of an in-flight transmit. Called from
// the port's transmit-complete context; never blocks.
func (h *Handle) TxComplete() {
	h.txDone.give()
}

// PushByte feeds a single received byte, for ports that deliver bytes
// one interrupt at a time instead of through the circular engine.
// Reports whether the byte fit in the ring.
func (h *Handle) PushByte(b byte) bool {
	return h.rx.pushByteFromISR(b)
}
