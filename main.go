// Command alpr draws an animated six-axis radar chart of learner profiles.
package main

import (
	"alpr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.Fatal("alpr", err)
	}
}
