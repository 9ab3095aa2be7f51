package main

import "github.com/moyu-x/folder-manager/cmd"

func main() {
	cmd.Execute()
}
