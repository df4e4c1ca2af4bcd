//go:build cgo && onnxruntime

// This package illustrates the usage of the Magika go binding.
//
// It requires the onnxruntime and the Magika assets to be accessible.
// onnxruntime is available on https://github.com/microsoft/onnxruntime/releases
// Magika assets are available on https://github.com/google/magika/tree/main/assets
//
// Tag and link directives must be provided a build or run time:
// go run -tags onnxruntime -ldflags="-linkmode=external -extldflags=-L/opt/onnxruntime/lib" .

package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-magika/magika/magika"
)

const (
	// assetsDir holds where the Magika assets have been installed.
	assetsDir = "/opt/magika/assets"
	// modelName holds the Magika model to use.
	modelName = "standard_v3_3"
)

func main() {
	// Open the scanner.
	s, err := magika.Open(assetsDir, modelName)
	if err != nil {
		log.Fatalf("Open failed: %v", err)
	}
	// Identify.
	res, err := s.IdentifyStream(strings.NewReader("Hello world"), 11)
	if err != nil {
		log.Fatalf("IdentifyStream failed: %v", err)
	}
	fmt.Printf("%+v\n", res.Prediction.Output)
}
