package main

import "github.com/pikchain/pikchain/cmd"

func main() {
	cmd.Execute()
}
