package main

import "github.com/papertone/papertone/cmd"

func main() {
	cmd.Execute()
}
