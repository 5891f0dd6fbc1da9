package uat

import (
	"fmt"
	"time"
)

// Config carries the tunables of the dispatcher core. Build one with
// NewConfigBuilder; the zero value is not usable.
type Config struct {
	port           Port
	rxBufferSize   int
	txBufferSize   int
	dmaBufferSize  int
	maxHandlers    int
	lineTerminator string
	txTimeout      time.Duration
	mutexTimeout   time.Duration
}

func (c *Config) setDefaults() {
	if c.rxBufferSize == 0 {
		c.rxBufferSize = 512
	}
	if c.txBufferSize == 0 {
		c.txBufferSize = 512
	}
	if c.dmaBufferSize == 0 {
		c.dmaBufferSize = 512
	}
	if c.maxHandlers == 0 {
		c.maxHandlers = 10
	}
	if c.lineTerminator == "" {
		c.lineTerminator = "\r\n"
	}
	if c.txTimeout == 0 {
		c.txTimeout = time.Second
	}
	if c.mutexTimeout == 0 {
		c.mutexTimeout = 500 * time.Millisecond
	}
}

func (c *Config) validate() error {
	if c.port == nil {
		return fmt.Errorf("%w: port is required", ErrInvalidArg)
	}
	if c.rxBufferSize < 2 || c.txBufferSize < 3 || c.dmaBufferSize < 1 {
		return fmt.Errorf("%w: buffer sizes", ErrInvalidArg)
	}
	if c.maxHandlers < 1 {
		return fmt.Errorf("%w: max handlers", ErrInvalidArg)
	}
	return nil
}

// ConfigBuilder assembles a Config fluently.
type ConfigBuilder struct {
	cfg Config
}

// NewConfigBuilder returns a builder preloaded with nothing; defaults
// are applied by Build.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithPort sets the platform port. Required.
func (b *ConfigBuilder) WithPort(p Port) *ConfigBuilder {
	b.cfg.port = p
	return b
}

// WithRxBufferSize sets the byte-ring capacity (default 512).
func (b *ConfigBuilder) WithRxBufferSize(n int) *ConfigBuilder {
	b.cfg.rxBufferSize = n
	return b
}

// WithTxBufferSize sets the transmit scratch size (default 512).
func (b *ConfigBuilder) WithTxBufferSize(n int) *ConfigBuilder {
	b.cfg.txBufferSize = n
	return b
}

// WithDMABufferSize sets the circular receive buffer size (default 512).
func (b *ConfigBuilder) WithDMABufferSize(n int) *ConfigBuilder {
	b.cfg.dmaBufferSize = n
	return b
}

// WithMaxHandlers sets the handler table capacity (default 10).
func (b *ConfigBuilder) WithMaxHandlers(n int) *ConfigBuilder {
	b.cfg.maxHandlers = n
	return b
}

// WithLineTerminator sets the inbound line terminator (default "\r\n").
func (b *ConfigBuilder) WithLineTerminator(t string) *ConfigBuilder {
	b.cfg.lineTerminator = t
	return b
}

// WithTxTimeout sets the transmit completion timeout (default 1s).
func (b *ConfigBuilder) WithTxTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.txTimeout = d
	return b
}

// WithMutexTimeout sets the acquisition cap for the transmit mutex and
// for the handler mutex in the registration calls (default 500ms).
// Dispatch uses its own fixed 100ms cap, and SendReceive waits for the
// handler mutex up to its timeout argument.
func (b *ConfigBuilder) WithMutexTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.mutexTimeout = d
	return b
}

// Build applies defaults and validates the configuration.
func (b *ConfigBuilder) Build() (Config, error) {
	cfg := b.cfg
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
