package main

import "github.com/ReeshabhSaini/CampusGrid-sub000/internal/cli"

func main() {
	cli.Execute()
}
