package main

import "github.com/nftfolio/batch-lister/cmd"

func main() {
	cmd.Execute()
}
