package main

import "github.com/klokku/clockify-timeline/cmd"

func main() {
	cmd.Execute()
}
