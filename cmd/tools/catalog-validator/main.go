// catalog-validator checks a catalog JSON document against the schema before
// it is deployed as reference data.
package main

import (
	"flag"
	"fmt"
	"os"

	"supermarket-comparator/internal/catalog"
)

func main() {
	path := flag.String("file", "configs/catalog.json", "catalog JSON document to validate")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *path, err)
		os.Exit(1)
	}

	if err := catalog.ValidateDocument(data); err != nil {
		fmt.Fprintf(os.Stderr, "invalid catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s is valid\n", *path)
}
