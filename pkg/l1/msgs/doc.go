// Package msgs defines the L1 wire protocol.
//
// Every message is wrapped in a Typed envelope carrying a 32-bit type ID and
// a sequence number. Commands flow from connectors to L1 controllers and are
// replied with the same sequence number, events flow from L1 controllers to
// everyone listening. Message bodies are protobuf encoded.
package msgs
