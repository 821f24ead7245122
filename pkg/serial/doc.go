// Package serial provides the byte transport used by peripheral drivers.
//
// Drivers only depend on the Port interface so they can be tested against
// in-memory fakes. Real ports are backed by go.bug.st/serial.
package serial
