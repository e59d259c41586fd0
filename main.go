package main

import "github.com/papusbarbershop/backend/cmd"

func main() {
	cmd.Execute()
}
