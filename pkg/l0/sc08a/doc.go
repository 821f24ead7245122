// Package sc08a drives the SC08A 8 channel PWM servo controller.
package sc08a

// Commands are 1, 2 or 4 bytes. The first byte carries the command family
// in the high 3 bits and the channel selector in the low bits. The middle
// bytes of a position command keep their top bit clear so the controller
// never mistakes payload for the start of a command.
//
//   power:    110ccccc  0000000s            (s = 1 on, 0 off)
//   set:      111ccccc  0hhhhhhh  0lllllll  speed
//   get:      101ccccc                      -> reply 0hhhhhhh 0lllllll
//
// Channel 0 addresses all channels, which is how the init command turns
// every channel on.
//
// Positions are encoded with 14 bits, real controllers only honour
// positions up to 8191.
