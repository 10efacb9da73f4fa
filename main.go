package main

import (
	"github.com/selloa/weed-tracker/cmd/weedtrack"
)

func main() {
	weedtrack.Execute()
}
