package main

import "github.com/spendlog/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
