package main

import "github.com/gaurav-prasanna/reelpipe/cmd"

func main() {
	cmd.Execute()
}
