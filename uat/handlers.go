package uat

// Handler is invoked by the dispatcher task for each line whose start
// matches the registered prefix. args is the text after the prefix with
// leading spaces and tabs skipped; it points into the dispatcher's line
// buffer and is only valid for the duration of the call.
type Handler func(args []byte)

type handlerEntry struct {
	prefix  string
	handler Handler
}

// RegisterCommand registers fn for lines beginning with prefix. A
// second registration with the same prefix replaces the stored
// callback in place; otherwise the entry is appended, so earlier
// registrations win when prefixes overlap.
func (h *Handle) RegisterCommand(prefix string, fn Handler) error {
	if prefix == "" || fn == nil || len(prefix) >= h.cfg.rxBufferSize {
		return ErrInvalidArg
	}
	if !h.handlerMu.take(h.cfg.mutexTimeout) {
		return ErrBusy
	}
	defer h.handlerMu.give()

	for i := range h.handlers {
		if h.handlers[i].prefix == prefix {
			h.handlers[i].handler = fn
			return nil
		}
	}
	if len(h.handlers) >= h.cfg.maxHandlers {
		return ErrResource
	}
	h.handlers = append(h.handlers, handlerEntry{prefix: prefix, handler: fn})
	return nil
}

// RegisterURC registers fn for an unsolicited result code. The entry is
// inserted at the front of the table so URCs match before ordinary
// handlers; an existing entry with the same prefix is removed first.
func (h *Handle) RegisterURC(prefix string, fn Handler) error {
	if prefix == "" || fn == nil || len(prefix) >= h.cfg.rxBufferSize {
		return ErrInvalidArg
	}
	if !h.handlerMu.take(h.cfg.mutexTimeout) {
		return ErrBusy
	}
	defer h.handlerMu.give()

	for i := range h.handlers {
		if h.handlers[i].prefix == prefix {
			h.handlers = append(h.handlers[:i], h.handlers[i+1:]...)
			break
		}
	}
	if len(h.handlers) >= h.cfg.maxHandlers {
		return ErrResource
	}
	h.handlers = append(h.handlers, handlerEntry{})
	copy(h.handlers[1:], h.handlers)
	h.handlers[0] = handlerEntry{prefix: prefix, handler: fn}
	return nil
}

// UnregisterCommand removes the entry registered for prefix.
func (h *Handle) UnregisterCommand(prefix string) error {
	if prefix == "" {
		return ErrInvalidArg
	}
	if !h.handlerMu.take(h.cfg.mutexTimeout) {
		return ErrBusy
	}
	defer h.handlerMu.give()
	return h.unregisterLocked(prefix)
}

// unregisterLocked removes by prefix, shifting the tail down. The
// caller holds handlerMu.
func (h *Handle) unregisterLocked(prefix string) error {
	for i := range h.handlers {
		if h.handlers[i].prefix == prefix {
			h.handlers = append(h.handlers[:i], h.handlers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// dispatch routes one framed line. The send-receive accumulator is fed
// before any handler runs, so a matching callback observes a buffer
// that already contains its own line. The handler mutex is released
// before the captured callback is invoked: handlers may re-enter
// registration or send-receive. If the mutex cannot be taken within
// dispatchMutexTimeout the line is dropped.
func (h *Handle) dispatch(line []byte) {
	if !h.handlerMu.take(dispatchMutexTimeout) {
		return
	}
	if h.sr.active {
		h.srAppend(line)
	}
	var fn Handler
	var args []byte
	for i := range h.handlers {
		if matchPrefix(line, h.handlers[i].prefix) {
			fn = h.handlers[i].handler
			args = skipBlanks(line[len(h.handlers[i].prefix):])
			break
		}
	}
	h.handlerMu.give()
	if fn != nil {
		fn(args)
	}
}

func matchPrefix(line []byte, prefix string) bool {
	if len(prefix) == 0 || len(line) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if line[i] != prefix[i] {
			return false
		}
	}
	return true
}

func skipBlanks(b []byte) []byte {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
		i++
	}
	return b[i:]
}
