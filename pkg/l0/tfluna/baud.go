package tfluna

// DefaultBaudRate is the factory baud rate.
const DefaultBaudRate = 115200

// BaudRates are the supported baud rates.
var BaudRates = []int{9600, 19200, 38400, 57600, 115200, 230400, 460800, 921600}

// baudCodes is indexed the same as BaudRates.
var baudCodes = [][3]byte{
	{0x80, 0x25, 0x00},
	{0x00, 0x4b, 0x00},
	{0x00, 0x96, 0x00},
	{0x00, 0xe1, 0x00},
	{0x00, 0xc2, 0x01},
	{0x00, 0x84, 0x03},
	{0x00, 0x08, 0x07},
	{0x00, 0x10, 0x0e},
}

func baudIndex(rate int) int {
	for n, r := range BaudRates {
		if r == rate {
			return n
		}
	}
	return -1
}

// ProbeOrder returns the order baud rates are tried: the default first,
// then the others in BaudRates order.
func ProbeOrder() []int {
	rates := make([]int, 0, len(BaudRates))
	rates = append(rates, DefaultBaudRate)
	for _, r := range BaudRates {
		if r != DefaultBaudRate {
			rates = append(rates, r)
		}
	}
	return rates
}
