package printer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends raw ESC/POS bytes to a thermal receipt printer.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// Ready reports whether the device is reachable right now.
	Ready() bool
	Kind() string
}

// --- USB (device file, e.g. /dev/usb/lp0) ---

type usbPrinter struct {
	path string
}

// NewUSBPrinter writes each job to a USB line-printer device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Ready() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *usbPrinter) Kind() string { return "usb" }

// --- Network (raw TCP, usually port 9100) ---

type networkPrinter struct {
	address string
	dialer  net.Dialer
}

// NewNetworkPrinter dials address (host:port) for every job.
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		dialer:  net.Dialer{Timeout: 5 * time.Second},
	}
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Ready() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *networkPrinter) Kind() string { return "network" }

// --- Memory (keeps the last jobs; used without hardware and in tests) ---

// MemoryPrinter records jobs instead of printing them.
type MemoryPrinter struct {
	mu   sync.Mutex
	jobs [][]byte
	max  int
}

// NewMemoryPrinter keeps at most max jobs (oldest dropped first).
func NewMemoryPrinter(max int) *MemoryPrinter {
	if max <= 0 {
		max = 20
	}
	return &MemoryPrinter{max: max}
}

func (p *MemoryPrinter) Print(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.jobs = append(p.jobs, bytes.Clone(data))
	if len(p.jobs) > p.max {
		p.jobs = p.jobs[len(p.jobs)-p.max:]
	}
	return nil
}

func (p *MemoryPrinter) Ready() bool  { return true }
func (p *MemoryPrinter) Kind() string { return "memory" }

// Jobs returns a copy of the recorded jobs, oldest first.
func (p *MemoryPrinter) Jobs() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([][]byte, len(p.jobs))
	copy(out, p.jobs)
	return out
}

// Last returns the most recent job, or nil.
func (p *MemoryPrinter) Last() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.jobs) == 0 {
		return nil
	}
	return p.jobs[len(p.jobs)-1]
}

// New builds a printer from its configured kind: "usb", "network", or
// "none"/"memory".
func New(kind, usbPath, address string) (Printer, error) {
	switch kind {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: usb path is required for usb printers")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		return NewNetworkPrinter(address), nil
	case "none", "memory", "":
		return NewMemoryPrinter(0), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network or none)", kind)
	}
}
