package main

import "diarias/internal/app/server"

func main() {
	server.Run()
}
