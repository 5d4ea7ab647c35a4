package main

import "github.com/frahmantamala/expense-api/cmd"

func main() {
	cmd.Execute()
}
