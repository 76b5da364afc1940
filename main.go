package main

import "github.com/redactyl/shotredact/cmd/shotredact"

func main() { shotredact.Execute() }
