// Command puppet-render poses the humanoid skeleton and writes its front and
// side views as SVG, PNG or WebP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
