package main

import "github.com/samhoang/skillctl/cmd"

func main() {
	cmd.Execute()
}
