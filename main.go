package main

import "marketplace/internal/cmd"

func main() {
	cmd.Execute()
}
