package main

import "github.com/hurou927/erm-core/cmd"

func main() {
	cmd.Execute()
}
