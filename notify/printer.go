package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/cinedex/cinedex/style"
)

// Printer writes notices as lines, for non-interactive commands.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) ShowNotice(message string, options Options) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch options.Variant {
	case Error:
		message = style.Fail(message)
	case Success:
		message = style.Success(message)
	default:
		message = style.Faint(style.GlyphInfo) + " " + message
	}

	_, _ = fmt.Fprintln(p.out, message)
}
