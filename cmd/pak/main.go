package main

import "github.com/packbuild/pak/cmd/pak/internal"

func main() {
	internal.Execute()
}
