package main

import (
	"fmt"
	"os"

	_ "github.com/mtibben/androiddnsfix"
	"github.com/nojima/jsonhttp"
	"github.com/nojima/jsonhttp/input"
)

func main() {
	if err := jsonhttp.Main(&jsonhttp.Options{Method: input.MethodPost}); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
