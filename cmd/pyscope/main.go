package main

import "github.com/haldis-lang/pyscope/pkg/cmd"

func main() {
	cmd.Execute()
}
