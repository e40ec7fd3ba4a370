package main

import "github.com/theirongolddev/selforge/cmd"

func main() {
	cmd.Execute()
}
