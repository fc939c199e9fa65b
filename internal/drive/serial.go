package drive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Line protocol spoken by the axis controller bridge: one command per
// line, one reply per line.
//
//	MOV <v0> <v1> ...  ->  OK | ERR <reason>
//	POS                ->  <v0> <v1> ... | ERR <reason>
//	STP                ->  OK | ERR <reason>
const (
	cmdMove = "MOV"
	cmdPos  = "POS"
	cmdStop = "STP"
)

// SerialMover implements Mover over a line-oriented serial link to a
// motion controller bridge.
type SerialMover struct {
	mu     sync.Mutex
	port   io.ReadWriter
	reader *bufio.Reader
	closer io.Closer
}

// DefaultSerialMode returns the serial mode the controller bridges use.
func DefaultSerialMode() *serial.Mode {
	return &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// NewSerialMover opens the serial device at path and wraps it in a
// Mover.
func NewSerialMover(path string, mode *serial.Mode) (*SerialMover, error) {
	if mode == nil {
		mode = DefaultSerialMode()
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", path, err)
	}
	// Bounded reads so a wedged controller cannot block forever.
	if err := port.SetReadTimeout(5 * time.Second); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}
	m := NewSerialMoverFromPort(port)
	m.closer = port
	return m, nil
}

// NewSerialMoverFromPort wraps an existing port. Tests inject in-memory
// pipes here.
func NewSerialMoverFromPort(port io.ReadWriter) *SerialMover {
	return &SerialMover{
		port:   port,
		reader: bufio.NewReader(port),
	}
}

// Close releases the underlying serial port, if this mover opened one.
func (m *SerialMover) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}

// MoveTo implements Mover.
func (m *SerialMover) MoveTo(ctx context.Context, point []float64) error {
	parts := make([]string, 0, len(point)+1)
	parts = append(parts, cmdMove)
	for _, v := range point {
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	reply, err := m.exchange(ctx, strings.Join(parts, " "))
	if err != nil {
		return err
	}
	if reply != "OK" {
		return fmt.Errorf("controller rejected move: %s", reply)
	}
	return nil
}

// CurrentPosition implements Mover.
func (m *SerialMover) CurrentPosition(ctx context.Context) ([]float64, error) {
	reply, err := m.exchange(ctx, cmdPos)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(reply, "ERR") {
		return nil, fmt.Errorf("controller position query failed: %s", reply)
	}
	fields := strings.Fields(reply)
	position := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed position reply %q: %w", reply, err)
		}
		position[i] = v
	}
	return position, nil
}

// Stop implements Mover.
func (m *SerialMover) Stop(ctx context.Context) error {
	reply, err := m.exchange(ctx, cmdStop)
	if err != nil {
		return err
	}
	if reply != "OK" {
		return fmt.Errorf("controller rejected stop: %s", reply)
	}
	return nil
}

// exchange writes one command line and reads one reply line. The port
// itself enforces read timeouts; ctx is checked before the exchange
// starts.
func (m *SerialMover) exchange(ctx context.Context, command string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.port.Write([]byte(command + "\n")); err != nil {
		return "", fmt.Errorf("serial write failed: %w", err)
	}
	line, err := m.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("serial read failed: %w", err)
	}
	return strings.TrimSpace(line), nil
}
