package main

import "github.com/jsphweid/reslice/cmd"

func main() {
	cmd.Execute()
}
