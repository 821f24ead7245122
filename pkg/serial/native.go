package serial

import (
	"fmt"

	"github.com/golang/glog"
	bugst "go.bug.st/serial"
)

// Native opens real serial ports.
var Native Opener = OpenFunc(Open)

// Open opens a serial port using 8N1 framing.
func Open(path string, mode *Mode) (Port, error) {
	if mode == nil || mode.BaudRate <= 0 {
		return nil, fmt.Errorf("invalid baud rate for %s", path)
	}
	port, err := bugst.Open(path, &bugst.Mode{
		BaudRate: mode.BaudRate,
		DataBits: 8,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s@%d: %w", path, mode.BaudRate, err)
	}
	timeout := mode.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	if err = port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", path, err)
	}
	glog.V(2).Infof("opened %s@%d timeout=%v", path, mode.BaudRate, timeout)
	return port, nil
}

// List enumerates serial ports available on the system.
func List() ([]string, error) {
	return bugst.GetPortsList()
}
