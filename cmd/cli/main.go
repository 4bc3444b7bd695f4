package main

import "github.com/angelospk/sublight-go/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
