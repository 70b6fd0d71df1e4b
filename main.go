package main

import "github.com/jackwu/notepad/cmd"

func main() {
	cmd.Execute()
}
