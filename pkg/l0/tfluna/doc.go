// Package tfluna drives the TF-Luna single point LiDAR over UART.
package tfluna

// The sensor streams 9-byte data frames:
//
//   0x59 0x59 dist_L dist_H str_L str_H temp_L temp_H checksum
//
// Commands and their replies start with 0x5a followed by the total length
// and the command ID.
//
// The sensor may have been configured to any of the supported baud rates,
// so the link is brought up by probing rates until a data frame shows up.
