// Asbtool encodes, decodes and describes aSysBus frames and relays bus traffic to MQTT.
package main

import (
	"fmt"
	"os"

	"github.com/arloliu/go-asb/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
