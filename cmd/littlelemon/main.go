package main

import "github.com/example/littlelemon/cmd"

func main() {
	cmd.Execute()
}
