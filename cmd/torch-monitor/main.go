// torch-monitor tails the torch firmware's UART console from a host
// machine, timestamping each line. Point it at the USB-serial adapter
// wired to the board's console pins.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tarm/serial"
)

func main() {
	port := flag.String("port", "/dev/ttyUSB0", "serial port the console is wired to")
	baud := flag.Int("baud", 115200, "console baud rate")
	flag.Parse()

	p, err := serial.OpenPort(&serial.Config{Name: *port, Baud: *baud})
	if err != nil {
		log.Fatalf("open %s: %v", *port, err)
	}
	defer p.Close()

	fmt.Fprintf(os.Stderr, "listening on %s @ %d\n", *port, *baud)
	sc := bufio.NewScanner(p)
	for sc.Scan() {
		fmt.Printf("%s %s\n", time.Now().Format("15:04:05.000"), sc.Text())
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("read: %v", err)
	}
}
