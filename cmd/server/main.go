package main

import "github.com/kyashasri/CHAT-APPLICATION/internal/server"

func main() {
	srv := server.NewServer()
	srv.Run()
}
