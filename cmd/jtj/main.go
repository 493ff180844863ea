// Command jtj turns a jar into PHP stubs and the JPHP bridge classes that
// expose it to scripts.
package main

import (
	"fmt"
	"os"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jtj: %v\n", err)
		os.Exit(1)
	}
}
