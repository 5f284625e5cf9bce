/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/fsepack/cmd/fsepack/cmd"
)

func main() {
	cmd.Execute()
}
