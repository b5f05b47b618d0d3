package main

import "github.com/phillip/charity-admin-go/cmd"

func main() {
	cmd.Execute()
}
