package main

import "github.com/user/caption-timeline-cli/cmd"

func main() {
	cmd.Execute()
}
