package main

import "github.com/pfrederiksen/wc-dashboard/internal/cli"

func main() {
	cli.Execute()
}
