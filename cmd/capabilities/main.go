// Package main prints which canonical relations each registered client can derive.
package main

import (
	"flag"
	"fmt"
	"os"

	"safetynorm/internal/config"
	"safetynorm/internal/formatter"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML (optional)")
	client := flag.String("client", "", "Show the column mapping of one client")
	export := flag.String("export", "", "Write all client mappings to this YAML file")
	flag.Parse()

	cfg := config.Default()

	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	reg, err := cfg.LoadRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mappings: %v\n", err)
		os.Exit(1)
	}

	if *client != "" {
		entry, err := reg.Entry(*client)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s %s\n\n", entry.Name, entry.Capabilities())
		fmt.Print(formatter.MappingTable(entry.Mapping))

		for _, a := range entry.Annotations {
			fmt.Printf("note: %s\n", a.Reason)
		}

		return
	}

	fmt.Print(formatter.CapabilityMatrix(reg.Clients()))

	if *export != "" {
		if err := reg.WriteFile(*export); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\nWrote %d clients to %s\n", reg.Len(), *export)
	}
}
