package main

import "github.com/agentic-research/uniface/cmd"

func main() {
	cmd.Execute()
}
