package main

import "github.com/frostyfucker/HotelBrendle/cmd/brendle/cmd"

func main() {
	cmd.Execute()
}
