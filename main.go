// gh-repos searches GitHub repositories and manages stars and notification
// subscriptions, keeping every open view of a repository in step.
package main

import (
	"fmt"
	"os"

	"github.com/jparise/gh-repos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
