// Package env provides common settings of L1 processes.
package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const appID = "perilink"

// MachineID returns a stable ID of this machine, derived from the OS
// machine ID so it's not exposed directly. The hostname is used if the
// machine ID isn't available.
func MachineID() string {
	id, err := machineid.ProtectedID(appID)
	if err == nil {
		return id[:16]
	}
	glog.Warningf("machine id unavailable: %v", err)
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return "unknown"
}
