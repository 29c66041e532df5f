// Command oxycap decodes Ethernet frames replayed from a pcap savefile
// or read from a live capture handle, and prints a table of the
// decoded protocol layers.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
