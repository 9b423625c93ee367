// Command confload prints the merged configuration of an application part.
//
//	confload show --dir ./config frontend
//	confload files --dir ./config --local backend
//	confload env --required DATABASE_URL
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
