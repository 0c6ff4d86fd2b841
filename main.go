package main

import "github.com/VoxDroid/dtf/cmd"

func main() {
	cmd.Execute()
}
