package main

import "github.com/xiaofuou6/chaos-card-machine/cmd"

func main() {
	cmd.Execute()
}
