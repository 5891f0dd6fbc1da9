// Package serialport connects the uat dispatcher core to a physical
// serial device using go.bug.st/serial.
//
// The package emulates the circular DMA receive engine the core
// expects: a reader goroutine copies received bytes into the ring
// handed to StartReceive and raises the idle callback after every
// burst, which is when a hardware idle-line interrupt would fire.
package serialport

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.bug.st/serial"
)

// Config selects the device to open.
type Config struct {
	// Name is the path of the serial device (e.g. "/dev/ttyUSB0").
	Name string
	// BaudRate is the line speed (e.g. 115200).
	BaudRate int
}

// Port adapts a serial.Port to the uat.Port capability surface.
type Port struct {
	port serial.Port

	mu      sync.Mutex
	ring    []byte
	cursor  int
	running bool
	aborted atomic.Bool

	idleFn   func()
	txDoneFn func()
}

// Open opens the serial device and returns a Port ready to be handed to
// the core. Wire OnIdle and OnTxComplete before traffic is expected.
func Open(cfg Config) (*Port, error) {
	if cfg.Name == "" {
		return nil, errors.New("serialport: port name is required")
	}
	mode := &serial.Mode{BaudRate: cfg.BaudRate}
	sp, err := serial.Open(cfg.Name, mode)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", cfg.Name, err)
	}
	return newPort(sp), nil
}

func newPort(sp serial.Port) *Port {
	return &Port{port: sp}
}

// OnIdle registers the idle-line callback. Bytes received before the
// callback is wired stay in the ring and are forwarded on the next
// idle event.
func (p *Port) OnIdle(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idleFn = fn
}

// OnTxComplete registers the transmit-complete callback.
func (p *Port) OnTxComplete(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.txDoneFn = fn
}

// StartReceive begins circular reception into buf. The first call
// starts the reader goroutine; later calls (from Reset) rewind the
// cursor and clear the abort flag.
func (p *Port) StartReceive(buf []byte) error {
	if len(buf) == 0 {
		return errors.New("serialport: receive buffer is empty")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ring = buf
	p.cursor = 0
	p.aborted.Store(false)
	if !p.running {
		p.running = true
		go p.readLoop()
	}
	return nil
}

// Remaining returns the emulated count-down register: bytes left
// before the ring cursor wraps.
func (p *Port) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ring) - p.cursor
}

// Transmit writes data in the background and raises the
// transmit-complete callback when the write finishes. A write error
// suppresses the callback, surfacing to the core as a transmit
// timeout.
func (p *Port) Transmit(data []byte) error {
	if len(data) == 0 {
		return errors.New("serialport: empty transmit")
	}
	go func() {
		if _, err := p.port.Write(data); err != nil {
			return
		}
		p.mu.Lock()
		done := p.txDoneFn
		p.mu.Unlock()
		if done != nil {
			done()
		}
	}()
	return nil
}

// AbortReceive stops feeding the ring and flushes the device's input
// queue. StartReceive resumes.
func (p *Port) AbortReceive() error {
	p.aborted.Store(true)
	return p.port.ResetInputBuffer()
}

// AbortTransmit flushes the device's output queue.
func (p *Port) AbortTransmit() error {
	return p.port.ResetOutputBuffer()
}

// Close closes the underlying device. The reader goroutine exits on
// its next read error.
func (p *Port) Close() error {
	return p.port.Close()
}

func (p *Port) readLoop() {
	tmp := make([]byte, 64)
	for {
		n, err := p.port.Read(tmp)
		if err != nil {
			return
		}
		if n == 0 || p.aborted.Load() {
			continue
		}
		p.mu.Lock()
		for _, b := range tmp[:n] {
			if len(p.ring) == 0 {
				break
			}
			p.ring[p.cursor] = b
			p.cursor++
			if p.cursor == len(p.ring) {
				p.cursor = 0
			}
		}
		idle := p.idleFn
		p.mu.Unlock()
		if idle != nil {
			idle()
		}
	}
}
