package main

import "github.com/theirongolddev/sienna/cmd"

func main() {
	cmd.Execute()
}
