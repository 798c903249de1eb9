package main

import (
	"github.com/beanboi7/chyp8/cmd"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	cmd.Execute(version, commit, date)
}
