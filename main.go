package main

import "github.com/tanq16/ytgrab/cmd"

func main() {
	cmd.Execute()
}
