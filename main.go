package main

import "github.com/gaurav-prasanna/recipecard/cmd"

func main() {
	cmd.Execute()
}
