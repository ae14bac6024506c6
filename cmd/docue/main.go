package main

import "os"

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
