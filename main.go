package main

import "github.com/pwrequiem/go-board-archive/cmd"

func main() {
	cmd.Execute()
}
