package main

import "github.com/taskbot-dev/taskbot/cmd"

func main() {
	cmd.Execute()
}
