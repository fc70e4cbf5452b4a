package main

import "github.com/kdctools/keytab/cmd"

func main() {
	cmd.Execute()
}
