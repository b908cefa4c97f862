package main

import "keidec/cmd"

func main() {
	cmd.Execute()
}
