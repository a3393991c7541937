/*fieldmap is the command line interface to the fieldmap library,
which stores N-D field maps and interpolates electric and magnetic fields
from them.*/
package main

import (
	"os"

	"github.com/phil-mansfield/fieldmap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
