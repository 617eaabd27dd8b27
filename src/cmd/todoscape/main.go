// Package main is the entry point for the Todoscape application.
// It initializes all components and runs the main program loop.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := bootstrap(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
