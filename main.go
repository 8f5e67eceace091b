package main

import "github.com/yext/hellod/cmd"

func main() {
	cmd.Execute()
}
