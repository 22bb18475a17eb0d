package main

import "restaurant-review/cmd"

func main() {
	cmd.Execute()
}
