package main

import "github.com/akobyl/KitchenCard/cmd"

func main() {
	cmd.Execute()
}
