package main

import "github.com/zjrosen/rtkit/cmd"

func main() {
	cmd.Execute()
}
