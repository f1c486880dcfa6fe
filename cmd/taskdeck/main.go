package main

import "github.com/ndanylov/taskdeck/internal/cli"

func main() {
	cli.Execute()
}
