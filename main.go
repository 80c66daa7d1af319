package main

import (
	"log"
	"os"

	"github.com/snap-point/blog-api/cmd"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cmd.Execute()
}
