package main

import "github.com/kinoteka/kinoteka/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
