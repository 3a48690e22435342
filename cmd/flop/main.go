package main

import "github.com/kairyu/flop/cmd/flop/cmd"

func main() {
	cmd.Execute()
}
