package main

import "github.com/mkrishnakr62/chatting-backend-app/internal/server"

func main() {
	server.NewServer().Run()
}
