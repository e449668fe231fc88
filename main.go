package main

import "github.com/bifrost-platform/asset-info-v2/cmd"

func main() {
	cmd.Execute()
}
