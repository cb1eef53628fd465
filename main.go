package main

import "github.com/xvierd/fokus/cmd"

func main() {
	cmd.Execute()
}
