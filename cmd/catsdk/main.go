package main

import "github.com/SamsoftComputers/catsdk/internal/cli"

func main() {
	cli.Execute()
}
